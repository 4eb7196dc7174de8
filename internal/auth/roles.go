package auth

import (
	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
)

// Area identifies a guarded resource area.
type Area string

const (
	AreaProperties       Area = "properties"
	AreaCatalog          Area = "catalog"
	AreaContracts        Area = "contracts"
	AreaImages           Area = "images"
	AreaMail             Area = "mail"
	AreaAppointments     Area = "appointments"
	AreaRequests         Area = "requests"
	AreaRequestDecisions Area = "request_decisions"
	AreaTransactions     Area = "transactions"
	AreaAgentDirectory   Area = "agent_directory"
	AreaUserDirectory    Area = "user_directory"
	AreaAdminHome        Area = "admin_home"
	AreaAgentHome        Area = "agent_home"
	AreaUserHome         Area = "user_home"
)

// areaRoles is the single capability table mapping each resource area to
// the roles entitled to it. Declared once so every route guard and every
// workflow gate reads from the same mapping.
var areaRoles = map[Area][]domain.Role{
	AreaProperties:       {domain.RoleAdmin, domain.RoleAgent},
	AreaCatalog:          {domain.RoleAdmin, domain.RoleAgent},
	AreaContracts:        {domain.RoleAdmin, domain.RoleAgent},
	AreaImages:           {domain.RoleAdmin, domain.RoleAgent},
	AreaMail:             {domain.RoleAdmin, domain.RoleAgent},
	AreaAppointments:     {domain.RoleAgent, domain.RoleUser},
	AreaRequests:         {domain.RoleAdmin, domain.RoleAgent, domain.RoleUser},
	AreaRequestDecisions: {domain.RoleAdmin, domain.RoleAgent},
	AreaTransactions:     {domain.RoleAdmin},
	AreaAgentDirectory:   {domain.RoleAdmin},
	AreaUserDirectory:    {domain.RoleAdmin},
	AreaAdminHome:        {domain.RoleAdmin},
	AreaAgentHome:        {domain.RoleAgent},
	AreaUserHome:         {domain.RoleUser},
}

// AllowedRoles returns the capability set for an area. Unknown areas
// have the empty set.
func AllowedRoles(area Area) []domain.Role {
	return areaRoles[area]
}

// IsRoleAllowed is the membership test behind every authorization
// decision: case-insensitive, total, and false for the empty or unknown
// role regardless of the allowed set.
func IsRoleAllowed(rawRole string, allowed []domain.Role) bool {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

// CanAccess reports whether the role may reach the given area.
func CanAccess(rawRole string, area Area) bool {
	return IsRoleAllowed(rawRole, areaRoles[area])
}

// LandingPath returns the role-specific landing route for valid roles
// and the login entry point otherwise.
func LandingPath(rawRole string) string {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return LoginPath
	}
	switch role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleAgent:
		return "/agent"
	default:
		return "/user"
	}
}
