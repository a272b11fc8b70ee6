package constants

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// OwnerCompanyTaxID identifies the platform-owner tenant (the union entity).
// A user belonging to this company with the admin role gets cross-tenant
// read access on the dashboard.
const OwnerCompanyTaxID = "61.234.987/0001-09"

var AllRoles = []string{RoleUser, RoleAdmin}
