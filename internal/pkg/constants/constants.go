package constants

// User roles.
const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
)

// Ad lifecycle statuses. Deleted is terminal; deleted ads never leave the
// public query path. Soft delete reuses the status column (no tombstone flag).
const (
	AdPending  = "pending"
	AdActive   = "active"
	AdRejected = "rejected"
	AdSold     = "sold"
	AdDeleted  = "deleted"
)

// User account statuses.
const (
	UserActive    = "active"
	UserSuspended = "suspended"
	UserBanned    = "banned"
)

// Report statuses. Resolved and dismissed are terminal.
const (
	ReportPending   = "pending"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

// Price types.
const (
	PriceFixed      = "fixed"
	PriceNegotiable = "negotiable"
	PriceContact    = "contact"
)

// ValidRoles is the set of allowed DB enum values for user role.
var ValidRoles = []string{RoleRegular, RoleAdmin}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidPriceType returns true for a recognized price type.
func IsValidPriceType(pt string) bool {
	return pt == PriceFixed || pt == PriceNegotiable || pt == PriceContact
}
