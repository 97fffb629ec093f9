// Package access holds the authorization rules of the hostel API: which principal may
// perform which operation on which resource, and the row filter that bounds the result.
package access

import (
	"github.com/noah-isme/hostel-api/internal/models"
	appErrors "github.com/noah-isme/hostel-api/pkg/errors"
)

// Operation is an action requested against a resource.
type Operation string

const (
	OpList         Operation = "list"
	OpRead         Operation = "read"
	OpCreate       Operation = "create"
	OpUpdateStatus Operation = "update-status"
	OpAssign       Operation = "assign"
)

// Resource names a protected resource family.
type Resource string

const (
	ResourceBlock        Resource = "block"
	ResourceRoom         Resource = "room"
	ResourceStudent      Resource = "student"
	ResourceComplaint    Resource = "complaint"
	ResourceLeaveRequest Resource = "leave_request"
	ResourceAnnouncement Resource = "announcement"
	ResourceAttendance   Resource = "attendance"
	ResourcePayment      Resource = "payment"
	ResourceStats        Resource = "stats"
	ResourceAnalytics    Resource = "analytics"
)

// Denial reasons surfaced to clients.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonOutOfScope      = "out of scope"
	ReasonRole            = "operation not permitted for role"
	ReasonNoStudent       = "no student record for this account"
	ReasonNoBlock         = "warden has no assigned block"
	ReasonNoRoom          = "no room assigned"
	ReasonUnsupported     = "operation not supported"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Filter  Filter
	Reason  string
}

// Allow grants access bounded by f.
func Allow(f Filter) Decision {
	return Decision{Allowed: true, Filter: f}
}

// Deny refuses access.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into the matching application error. It returns nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return appErrors.ErrUnauthenticated
	}
	return appErrors.Denied(d.Reason)
}

// Permits checks a loaded target against the decision's filter.
func (d Decision) Permits(t Target) bool {
	return d.Allowed && d.Filter.Permits(t)
}

// Observer receives every decision taken by an Authorizer.
type Observer interface {
	ObserveDecision(resource Resource, op Operation, allowed bool)
}

// Authorizer evaluates a Policy and reports outcomes to an optional Observer.
type Authorizer struct {
	policy   Policy
	observer Observer
}

// NewAuthorizer constructs an Authorizer.
func NewAuthorizer(policy Policy, observer Observer) *Authorizer {
	return &Authorizer{policy: policy, observer: observer}
}

// Authorize decides whether p may perform op on res.
func (a *Authorizer) Authorize(p *models.Principal, res Resource, op Operation) Decision {
	var policy Policy
	if a != nil {
		policy = a.policy
	}
	d := policy.Authorize(p, res, op)
	if a != nil && a.observer != nil {
		a.observer.ObserveDecision(res, op, d.Allowed)
	}
	return d
}

// Check is Authorize followed by Permits for a single loaded target.
// A target outside the filter yields an "out of scope" denial.
func (a *Authorizer) Check(p *models.Principal, res Resource, op Operation, t Target) error {
	d := a.Authorize(p, res, op)
	if err := d.Err(); err != nil {
		return err
	}
	if !d.Filter.Permits(t) {
		return appErrors.Denied(ReasonOutOfScope)
	}
	return nil
}
