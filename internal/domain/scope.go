package domain

import "time"

// Scope is the organization (and optionally branch) boundary every query and
// aggregation is restricted to. The caller always supplies it explicitly;
// nothing in the core infers the current organization from ambient state.
type Scope struct {
	OrganizationID int64
	BranchID       *int64
}

// OrgScope returns a scope covering a whole organization.
func OrgScope(organizationID int64) Scope {
	return Scope{OrganizationID: organizationID}
}

// BranchScope returns a scope narrowed to a single branch.
func BranchScope(organizationID, branchID int64) Scope {
	return Scope{OrganizationID: organizationID, BranchID: &branchID}
}

// DateRange is an optional inclusive date window. A nil bound is open-ended.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// AllTime is the unbounded date range.
var AllTime = DateRange{}

// RangeBetween builds an inclusive range over [from, to].
func RangeBetween(from, to time.Time) DateRange {
	return DateRange{From: &from, To: &to}
}

// Contains reports whether t falls inside the range. Bounds compare by
// calendar date, so a To of 2024-03-15 includes the whole of that day.
func (r DateRange) Contains(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	if r.From != nil && day.Before(r.From.Truncate(24*time.Hour)) {
		return false
	}
	if r.To != nil && day.After(r.To.Truncate(24*time.Hour)) {
		return false
	}
	return true
}
