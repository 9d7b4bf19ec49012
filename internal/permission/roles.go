package permission

// RoleTable maps a role name (or role document id) to its feature→actions
// grants. Keys are stored normalized; actions are stored with synonyms folded
// so that a grant written as products.edit satisfies a request for update.
type RoleTable map[string]map[string][]string

// RoleResolver authorizes a principal when any of its roles grants the
// requested action. The tenant table is consulted first and falls back to the
// static default table, matching how hotels override the built-in roles with
// their own role documents.
type RoleResolver struct {
	tenant   RoleTable
	fallback RoleTable
}

// NewRoleResolver builds a resolver over a tenant-specific table. A nil
// tenant table leaves only the static defaults.
func NewRoleResolver(tenant RoleTable) *RoleResolver {
	return &RoleResolver{tenant: tenant, fallback: DefaultRoleTable}
}

func (r *RoleResolver) Allowed(principal *Principal, feature, action string) bool {
	if principal == nil || len(principal.Roles) == 0 {
		return false
	}

	feature = NormalizeFeature(feature)
	action = NormalizeAction(action)
	if feature == "" || action == "" {
		return false
	}

	for _, role := range principal.Roles {
		grants := r.lookupRole(role)
		if grants == nil {
			continue
		}
		for _, granted := range grants[feature] {
			normalized := NormalizeAction(granted)
			if normalized == action || normalized == "*" {
				return true
			}
		}
	}
	return false
}

func (r *RoleResolver) lookupRole(role string) map[string][]string {
	key := NormalizeFeature(role)
	if key == "" {
		return nil
	}
	if r.tenant != nil {
		if grants, ok := r.tenant[key]; ok {
			return grants
		}
	}
	if grants, ok := r.fallback[key]; ok {
		return grants
	}
	return nil
}

// BuildRoleTable maps tenant role documents ({name, permissions: []key}) into
// a RoleTable keyed by both role name and role id, the way the admin app
// resolves roles either by display name or document reference.
func BuildRoleTable(roles []RoleDoc) RoleTable {
	table := make(RoleTable)
	for _, role := range roles {
		grants := make(map[string][]string)
		for _, key := range role.Permissions {
			feature, action, ok := SplitKey(key)
			if !ok {
				continue
			}
			if !contains(grants[feature], action) {
				grants[feature] = append(grants[feature], action)
			}
		}
		if len(grants) == 0 {
			continue
		}
		if name := NormalizeFeature(role.Name); name != "" {
			table[name] = grants
		}
		if id := NormalizeFeature(role.ID); id != "" {
			table[id] = grants
		}
	}
	return table
}

// RoleDoc is the subset of a role document the resolver needs.
type RoleDoc struct {
	ID          string
	Name        string
	Permissions []string
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
