package permission

// GrantResolver authorizes against a flat set of feature.action strings
// carried directly on the principal. A feature.* grant authorizes every
// action on that feature.
type GrantResolver struct{}

func NewGrantResolver() *GrantResolver { return &GrantResolver{} }

func (GrantResolver) Allowed(principal *Principal, feature, action string) bool {
	if principal == nil || len(principal.Permissions) == 0 {
		return false
	}

	feature = NormalizeFeature(feature)
	action = NormalizeAction(action)
	if feature == "" || action == "" {
		return false
	}

	for _, key := range principal.Permissions {
		grantFeature, grantAction, ok := SplitKey(key)
		if !ok || grantFeature != feature {
			continue
		}
		if grantAction == action || grantAction == "*" {
			return true
		}
	}
	return false
}

// HasPermission is the convenience entry point used by route guards: it picks
// the resolver matching the principal's shape. Flat grants win when present,
// mirroring the newer deployment generation.
func HasPermission(resolver Resolver, principal *Principal, feature, action string) bool {
	if principal == nil {
		return false
	}
	if len(principal.Permissions) > 0 {
		return GrantResolver{}.Allowed(principal, feature, action)
	}
	if resolver == nil {
		return false
	}
	return resolver.Allowed(principal, feature, action)
}
