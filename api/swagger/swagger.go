package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {"title": "Hostel API", "description": "Role-scoped hostel management API", "version": "1.0.0"},
  "basePath": "/api/v1",
  "schemes": ["http"],
  "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
  "paths": {
    "/auth/register": {
      "post": {
        "tags": ["Authentication"],
        "summary": "Register a student account",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/RegisterRequest"}
          }
        ]
      }
    },
    "/auth/login": {
      "post": {
        "tags": ["Authentication"],
        "summary": "Authenticate user",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/LoginRequest"}
          }
        ]
      }
    },
    "/auth/refresh": {
      "post": {
        "tags": ["Authentication"],
        "summary": "Rotate refresh token",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/RefreshTokenRequest"}
          }
        ]
      }
    },
    "/auth/logout": {
      "post": {
        "tags": ["Authentication"],
        "summary": "Revoke refresh token",
        "responses": {
          "204": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/RefreshTokenRequest"}
          }
        ]
      }
    },
    "/auth/me": {
      "get": {
        "tags": ["Authentication"],
        "summary": "Current user",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}]
      }
    },
    "/auth/change-password": {
      "post": {
        "tags": ["Authentication"],
        "summary": "Change password",
        "responses": {
          "204": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/ChangePasswordRequest"}
          }
        ]
      }
    },
    "/blocks": {
      "get": {
        "tags": ["Blocks"],
        "summary": "List blocks",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}]
      },
      "post": {
        "tags": ["Blocks"],
        "summary": "Create block",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreateBlockRequest"}
          }
        ]
      }
    },
    "/rooms": {
      "get": {
        "tags": ["Rooms"],
        "summary": "List rooms",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "blockId", "type": "string", "required": false, "description": "Block filter"},
          {"in": "query", "name": "available", "type": "boolean"},
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["Rooms"],
        "summary": "Create room",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreateRoomRequest"}
          }
        ]
      }
    },
    "/rooms/mine": {
      "get": {
        "tags": ["Rooms"],
        "summary": "Current student's room",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}]
      }
    },
    "/rooms/{id}": {
      "get": {
        "tags": ["Rooms"],
        "summary": "Get room",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]
      }
    },
    "/students": {
      "get": {
        "tags": ["Students"],
        "summary": "List students",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "roomId", "type": "string", "required": false, "description": "Room filter"},
          {"in": "query", "name": "unassigned", "type": "boolean"},
          {"in": "query", "name": "search", "type": "string", "required": false, "description": "Name or roll number"},
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["Students"],
        "summary": "Onboard student",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreateStudentRequest"}
          }
        ]
      },
      "patch": {
        "tags": ["Students"],
        "summary": "Assign a room",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/AssignRoomRequest"}
          }
        ]
      }
    },
    "/students/me": {
      "get": {
        "tags": ["Students"],
        "summary": "Current student's profile",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}]
      }
    },
    "/students/{id}": {
      "get": {
        "tags": ["Students"],
        "summary": "Get student",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]
      }
    },
    "/complaints": {
      "get": {
        "tags": ["Complaints"],
        "summary": "List complaints",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "status", "type": "string", "required": false, "description": "OPEN, IN_PROGRESS, RESOLVED or CLOSED"},
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["Complaints"],
        "summary": "File a complaint",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreateComplaintRequest"}
          }
        ]
      },
      "patch": {
        "tags": ["Complaints"],
        "summary": "Change complaint status",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/StatusUpdateRequest"}
          }
        ]
      }
    },
    "/complaints/{id}": {
      "get": {
        "tags": ["Complaints"],
        "summary": "Get complaint",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]
      }
    },
    "/leave-requests": {
      "get": {
        "tags": ["LeaveRequests"],
        "summary": "List leave requests",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "status", "type": "string", "required": false, "description": "PENDING, APPROVED, REJECTED or CANCELLED"},
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["LeaveRequests"],
        "summary": "Request leave",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreateLeaveRequest"}
          }
        ]
      },
      "patch": {
        "tags": ["LeaveRequests"],
        "summary": "Decide or cancel a leave request",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/StatusUpdateRequest"}
          }
        ]
      }
    },
    "/leave-requests/{id}": {
      "get": {
        "tags": ["LeaveRequests"],
        "summary": "Get leave request",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}]
      }
    },
    "/announcements": {
      "get": {
        "tags": ["Announcements"],
        "summary": "Announcement feed",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["Announcements"],
        "summary": "Publish announcement",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreateAnnouncementRequest"}
          }
        ]
      }
    },
    "/attendance": {
      "get": {
        "tags": ["Attendance"],
        "summary": "List attendance",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "from", "type": "string", "required": false, "description": "YYYY-MM-DD"},
          {"in": "query", "name": "to", "type": "string", "required": false, "description": "YYYY-MM-DD"},
          {"in": "query", "name": "studentId", "type": "string", "required": false, "description": "Student filter"},
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["Attendance"],
        "summary": "Mark attendance",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}
          }
        ]
      }
    },
    "/payments": {
      "get": {
        "tags": ["Payments"],
        "summary": "List payments",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "status", "type": "string", "required": false, "description": "PAID, PENDING or FAILED"},
          {"in": "query", "name": "from", "type": "string", "required": false, "description": "YYYY-MM-DD"},
          {"in": "query", "name": "to", "type": "string", "required": false, "description": "YYYY-MM-DD inclusive"},
          {"in": "query", "name": "page", "type": "integer"},
          {"in": "query", "name": "limit", "type": "integer"}
        ]
      },
      "post": {
        "tags": ["Payments"],
        "summary": "Record payment",
        "responses": {
          "201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {
            "in": "body",
            "name": "payload",
            "required": true,
            "schema": {"$ref": "#/definitions/CreatePaymentRequest"}
          }
        ]
      }
    },
    "/payments/export": {
      "get": {
        "tags": ["Payments"],
        "summary": "Export payments as CSV or PDF",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"in": "query", "name": "format", "type": "string", "required": false, "description": "csv or pdf"}
        ]
      }
    },
    "/stats": {
      "get": {
        "tags": ["Analytics"],
        "summary": "Open work summary",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}]
      }
    },
    "/analytics": {
      "get": {
        "tags": ["Analytics"],
        "summary": "Admin analytics",
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
          "400": {"description": "Validation failed or illegal transition"},
          "401": {"description": "Unauthenticated"},
          "403": {"description": "Forbidden"}
        },
        "security": [{"BearerAuth": []}]
      }
    }
  },
  "definitions": {
    "RegisterRequest": {
      "type": "object",
      "properties": {
        "email": {"type": "string"},
        "password": {"type": "string"},
        "fullName": {"type": "string"},
        "rollNo": {"type": "string"},
        "parentContact": {"type": "string"}
      }
    },
    "LoginRequest": {
      "type": "object",
      "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
    },
    "RefreshTokenRequest": {"type": "object", "properties": {"refreshToken": {"type": "string"}}},
    "ChangePasswordRequest": {
      "type": "object",
      "properties": {"oldPassword": {"type": "string"}, "newPassword": {"type": "string"}}
    },
    "CreateBlockRequest": {"type": "object", "properties": {"name": {"type": "string"}}},
    "CreateRoomRequest": {
      "type": "object",
      "properties": {
        "roomNumber": {"type": "string"},
        "capacity": {"type": "integer"},
        "blockId": {"type": "string"}
      }
    },
    "CreateStudentRequest": {
      "type": "object",
      "properties": {
        "email": {"type": "string"},
        "fullName": {"type": "string"},
        "rollNo": {"type": "string"},
        "parentContact": {"type": "string"},
        "roomId": {"type": "string"}
      }
    },
    "AssignRoomRequest": {
      "type": "object",
      "properties": {"id": {"type": "string"}, "roomId": {"type": "string"}}
    },
    "CreateComplaintRequest": {
      "type": "object",
      "properties": {
        "title": {"type": "string"},
        "description": {"type": "string"},
        "studentId": {"type": "string"}
      }
    },
    "CreateLeaveRequest": {
      "type": "object",
      "properties": {
        "fromDate": {"type": "string"},
        "toDate": {"type": "string"},
        "reason": {"type": "string"},
        "studentId": {"type": "string"}
      }
    },
    "StatusUpdateRequest": {
      "type": "object",
      "properties": {"id": {"type": "string"}, "status": {"type": "string"}}
    },
    "CreateAnnouncementRequest": {
      "type": "object",
      "properties": {
        "title": {"type": "string"},
        "message": {"type": "string"},
        "blockId": {"type": "string"}
      }
    },
    "MarkAttendanceRequest": {
      "type": "object",
      "properties": {
        "date": {"type": "string"},
        "entries": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {"studentId": {"type": "string"}, "present": {"type": "boolean"}}
          }
        }
      }
    },
    "CreatePaymentRequest": {
      "type": "object",
      "properties": {
        "amount": {"type": "number"},
        "studentId": {"type": "string"},
        "status": {"type": "string"}
      }
    },
    "Pagination": {
      "type": "object",
      "properties": {
        "page": {"type": "integer"},
        "limit": {"type": "integer"},
        "totalCount": {"type": "integer"}
      }
    },
    "ResponseEnvelope": {
      "type": "object",
      "properties": {
        "data": {"type": "object"},
        "error": {"type": "string"},
        "code": {"type": "string"},
        "pagination": {"$ref": "#/definitions/Pagination"},
        "meta": {"type": "object"}
      }
    }
  }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
