package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"staff": {
		"runs:process",
		"runs:view",
		"runs:export",
	},
	"admin": {
		"*", // everything
	},
}
