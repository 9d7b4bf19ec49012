package permission

import "strings"

// Principal is the authenticated actor whose permissions are being checked.
// Older deployments carry role names; newer ones carry flat feature.action
// grants. A nil principal always resolves to deny.
type Principal struct {
	Roles       []string
	Permissions []string
}

// Resolver decides whether a principal may perform action on feature.
// Implementations are pure: invalid or missing input degrades to false,
// never an error.
type Resolver interface {
	Allowed(principal *Principal, feature, action string) bool
}

// actionSynonyms folds legacy action names onto the canonical set.
var actionSynonyms = map[string]string{
	"view": "read",
	"edit": "update",
}

// NormalizeAction trims, lowercases and folds synonyms (view→read,
// edit→update). Applied symmetrically to requested actions and stored grants.
func NormalizeAction(action string) string {
	normalized := strings.ToLower(strings.TrimSpace(action))
	if canonical, ok := actionSynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeFeature trims and lowercases a feature name.
func NormalizeFeature(feature string) string {
	return strings.ToLower(strings.TrimSpace(feature))
}

// SplitKey breaks a feature.action grant into its normalized parts.
// Malformed keys report ok=false.
func SplitKey(key string) (feature, action string, ok bool) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	feature = NormalizeFeature(parts[0])
	action = NormalizeAction(parts[1])
	if feature == "" || action == "" {
		return "", "", false
	}
	return feature, action, true
}
