// Package permission decides whether a principal may perform an action on a
// feature. Two principal generations are supported behind one Resolver
// interface: role-based (roles resolved through a role→permission table) and
// flat grants (feature.action keys carried directly on the principal).
package permission

import "sort"

// Catalog enumerates every grantable feature/action pair.
var Catalog = map[string][]string{
	"catalogproducts":  {"create", "read", "update", "delete"},
	"supplierproducts": {"create", "read", "update", "delete"},
	"suppliers":        {"create", "read", "update", "delete", "password"},
	"orders":           {"create", "read", "update", "delete"},
	"settings":         {"create", "read", "update", "delete"},
	"users":            {"create", "read", "update", "delete"},
}

// AllKeys returns every feature.action key in the catalog, sorted.
func AllKeys() []string {
	var keys []string
	for feature, actions := range Catalog {
		for _, action := range actions {
			keys = append(keys, feature+"."+action)
		}
	}
	sort.Strings(keys)
	return keys
}

// DefaultRoleTable is the static fallback role→permission table, used when a
// hotel has not configured its own role documents.
var DefaultRoleTable = RoleTable{
	"administrator": {
		"catalogproducts":  {"create", "read", "update", "delete"},
		"supplierproducts": {"create", "read", "update", "delete"},
		"suppliers":        {"create", "read", "update", "delete", "password"},
		"orders":           {"create", "read", "update", "delete"},
		"settings":         {"create", "read", "update", "delete"},
		"users":            {"create", "read", "update", "delete"},
	},
	"manager": {
		"catalogproducts":  {"create", "read", "update"},
		"supplierproducts": {"create", "read", "update"},
		"suppliers":        {"read", "update"},
		"orders":           {"create", "read", "update"},
		"settings":         {"read"},
		"users":            {"read"},
	},
	"staff": {
		"catalogproducts":  {"read"},
		"supplierproducts": {"read"},
		"suppliers":        {"read"},
		"orders":           {"create", "read"},
	},
}
