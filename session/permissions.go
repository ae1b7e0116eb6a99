// session/permissions.go
package session

// Capability names the console actions a role may perform.
type Capability string

const (
	CapRequestCreate Capability = "requests.create"
	CapRequestReview Capability = "requests.review"
	CapRequestView   Capability = "requests.view"
	CapAuditView     Capability = "audit.view"
	CapAuditExport   Capability = "audit.export"
	CapUserManage    Capability = "users.manage"
)

// rolePermissions is static configuration. Capability sets are derived
// from the role alone on every check; nothing is persisted per user.
var rolePermissions = map[string][]Capability{
	"admin": {
		CapRequestCreate, CapRequestReview, CapRequestView,
		CapAuditView, CapAuditExport, CapUserManage,
	},
	"reviewer": {
		CapRequestReview, CapRequestView, CapAuditView,
	},
	"operator": {
		CapRequestCreate, CapRequestView,
	},
	"viewer": {
		CapRequestView,
	},
}

// Permissions returns the capability set for a role. Unknown roles get
// nothing.
func Permissions(role string) []Capability {
	perms := rolePermissions[role]
	out := make([]Capability, len(perms))
	copy(out, perms)
	return out
}

// Can reports whether the role carries the capability.
func Can(role string, capability Capability) bool {
	for _, c := range rolePermissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}
