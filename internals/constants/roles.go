package constants

import "fmt"

// Role error message templates
const (
	ErrOnlyAdminsCanAccess  = "❌ Only admins may access the %s feature."
	ErrOnlyOwnersCanAccess  = "❌ Only owners may access the %s feature."
	ErrOnlyNonUserCanAccess = "❌ The %s feature is not available to the student role."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

func RoleErrorNonUser(feature string) string {
	return fmt.Sprintf(ErrOnlyNonUserCanAccess, feature)
}

// ==========================
// ✅ Role names
// ==========================
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

var (
	AllRoles      = []string{RoleStudent, RoleAdmin, RoleOwner}
	AdminAndAbove = []string{RoleAdmin, RoleOwner}
)
