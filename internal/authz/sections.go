// internal/authz/sections.go
package authz

import (
	"github.com/DBN92/solve-it-neat/internal/models"
)

// Application sections a role may open. These identifiers double as
// route-group guards and as the tab list returned to the frontend.
const (
	SectionDashboard  = "dashboard"
	SectionNewRequest = "new-request"
	SectionConsents   = "consents"
	SectionDataOwner  = "data-owner"
	SectionReports    = "reports"
	SectionApplicant  = "applicant"
	SectionUsers      = "users"
)

var rolePermissions = map[models.UserRole][]string{
	models.RoleSuperAdm:  {SectionDashboard, SectionNewRequest, SectionConsents, SectionDataOwner, SectionReports, SectionApplicant, SectionUsers},
	models.RoleComercial: {SectionDashboard, SectionNewRequest, SectionConsents, SectionApplicant},
	models.RoleSuporte:   {SectionNewRequest, SectionConsents},
	models.RoleDataOwner: {SectionDataOwner},
}

// SectionsFor returns the permitted sections for a role. Unknown roles
// get nothing.
func SectionsFor(role models.UserRole) []string {
	sections, ok := rolePermissions[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(sections))
	copy(out, sections)
	return out
}

// HasSection reports whether the role may open the given section.
func HasSection(role models.UserRole, section string) bool {
	for _, s := range rolePermissions[role] {
		if s == section {
			return true
		}
	}
	return false
}
