package auth

import "fleetops/internal/domain"

// adminOnly lists the areas that expose fleet-wide financials.
var adminOnly = map[domain.Resource]struct{}{
	domain.ResourceReports:           {},
	domain.ResourceVehicleEfficiency: {},
	domain.ResourceDashboard:         {},
}

// CanAccess is the single authorization predicate for the application.
// A nil user is anonymous and may access nothing.
func CanAccess(user *Principal, resource domain.Resource) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleLimited, domain.RoleUser:
		_, restricted := adminOnly[resource]
		return !restricted
	default:
		return false
	}
}
