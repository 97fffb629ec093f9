package access

import "github.com/noah-isme/hostel-api/internal/models"

// Policy holds the deploy-time knobs of the rule set. The zero value is the strict policy.
type Policy struct {
	// AllowUnassignedWardenReads grants a warden without a block read access to every block.
	// Writes stay denied. When false such a warden is denied everything.
	AllowUnassignedWardenReads bool
}

type rule func(p *models.Principal, op Operation) Decision

var rules = map[Resource]rule{
	ResourceBlock:        blockRule,
	ResourceRoom:         roomRule,
	ResourceStudent:      studentRule,
	ResourceComplaint:    complaintRule,
	ResourceLeaveRequest: leaveRule,
	ResourceAnnouncement: announcementRule,
	ResourceAttendance:   attendanceRule,
	ResourcePayment:      paymentRule,
	ResourceStats:        statsRule,
	ResourceAnalytics:    analyticsRule,
}

// Authorize is a pure function of the principal, resource and operation.
func (pol Policy) Authorize(p *models.Principal, res Resource, op Operation) Decision {
	if p == nil || p.UserID == "" || !p.Role.Valid() {
		return Deny(ReasonUnauthenticated)
	}
	r, ok := rules[res]
	if !ok {
		return Deny(ReasonUnsupported)
	}
	if p.Role == models.RoleWarden && p.BlockID == "" {
		return pol.unassignedWarden(p, res, op, r)
	}
	if p.Role == models.RoleStudent && p.StudentID == "" {
		return Deny(ReasonNoStudent)
	}
	return r(p, op)
}

// unassignedWarden evaluates the rule as though the warden had a block, then widens or denies.
func (pol Policy) unassignedWarden(p *models.Principal, res Resource, op Operation, r rule) Decision {
	if !pol.AllowUnassignedWardenReads {
		return Deny(ReasonNoBlock)
	}
	if op != OpList && op != OpRead {
		return Deny(ReasonOutOfScope)
	}
	scoped := *p
	scoped.BlockID = "unassigned"
	if d := r(&scoped, op); !d.Allowed {
		return d
	}
	return Allow(Filter{})
}

func isReadOp(op Operation) bool {
	return op == OpList || op == OpRead
}

func blockScope(p *models.Principal) Filter {
	return Filter{RestrictBlock: true, BlockID: p.BlockID}
}

func ownerScope(p *models.Principal) Filter {
	return Filter{StudentID: p.StudentID}
}

func blockRule(p *models.Principal, op Operation) Decision {
	switch p.Role {
	case models.RoleAdmin:
		if isReadOp(op) || op == OpCreate {
			return Allow(Filter{})
		}
	case models.RoleWarden:
		if isReadOp(op) {
			return Allow(blockScope(p))
		}
		return Deny(ReasonRole)
	case models.RoleStudent:
		return Deny(ReasonRole)
	}
	return Deny(ReasonUnsupported)
}

func roomRule(p *models.Principal, op Operation) Decision {
	if op == OpUpdateStatus {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		return Allow(Filter{})
	case models.RoleWarden:
		return Allow(blockScope(p))
	case models.RoleStudent:
		if op != OpRead {
			break
		}
		if p.RoomID == "" {
			return Deny(ReasonNoRoom)
		}
		return Allow(Filter{RoomID: p.RoomID})
	}
	return Deny(ReasonRole)
}

func studentRule(p *models.Principal, op Operation) Decision {
	if op == OpUpdateStatus {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		return Allow(Filter{})
	case models.RoleWarden:
		switch op {
		case OpList, OpRead, OpAssign:
			f := blockScope(p)
			f.IncludeUnassigned = true
			return Allow(f)
		case OpCreate:
			return Allow(Filter{})
		}
	case models.RoleStudent:
		if op == OpRead {
			return Allow(ownerScope(p))
		}
	}
	return Deny(ReasonRole)
}

// studentOwnedRule covers resources created by students and moderated by staff.
func studentOwnedRule(p *models.Principal, op Operation, studentMayUpdate bool) Decision {
	if op == OpAssign {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		if op == OpCreate {
			return Deny(ReasonNoStudent)
		}
		return Allow(Filter{})
	case models.RoleWarden:
		if op == OpCreate {
			return Deny(ReasonRole)
		}
		return Allow(blockScope(p))
	case models.RoleStudent:
		if op == OpUpdateStatus && !studentMayUpdate {
			return Deny(ReasonRole)
		}
		return Allow(ownerScope(p))
	}
	return Deny(ReasonRole)
}

func complaintRule(p *models.Principal, op Operation) Decision {
	return studentOwnedRule(p, op, false)
}

func leaveRule(p *models.Principal, op Operation) Decision {
	return studentOwnedRule(p, op, true)
}

func announcementRule(p *models.Principal, op Operation) Decision {
	if op != OpList && op != OpRead && op != OpCreate {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		return Allow(Filter{})
	case models.RoleWarden:
		if op == OpCreate {
			return Allow(blockScope(p))
		}
		f := blockScope(p)
		f.IncludeGlobal = true
		return Allow(f)
	case models.RoleStudent:
		if op == OpCreate {
			return Deny(ReasonRole)
		}
		return Allow(Filter{RestrictBlock: true, BlockID: p.BlockID, IncludeGlobal: true})
	}
	return Deny(ReasonRole)
}

func attendanceRule(p *models.Principal, op Operation) Decision {
	if op != OpList && op != OpRead && op != OpCreate {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		return Allow(Filter{})
	case models.RoleWarden:
		return Allow(blockScope(p))
	case models.RoleStudent:
		if op == OpCreate {
			return Deny(ReasonRole)
		}
		return Allow(ownerScope(p))
	}
	return Deny(ReasonRole)
}

func paymentRule(p *models.Principal, op Operation) Decision {
	if op != OpList && op != OpRead && op != OpCreate {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		return Allow(Filter{})
	case models.RoleStudent:
		return Allow(ownerScope(p))
	}
	return Deny(ReasonRole)
}

func statsRule(p *models.Principal, op Operation) Decision {
	if op != OpRead {
		return Deny(ReasonUnsupported)
	}
	switch p.Role {
	case models.RoleAdmin:
		return Allow(Filter{})
	case models.RoleWarden:
		return Allow(blockScope(p))
	}
	return Deny(ReasonRole)
}

func analyticsRule(p *models.Principal, op Operation) Decision {
	if op == OpRead && p.Role == models.RoleAdmin {
		return Allow(Filter{})
	}
	if op != OpRead {
		return Deny(ReasonUnsupported)
	}
	return Deny(ReasonRole)
}
