package middleware

import "github.com/faizan/roster/models"

// Resource is a guarded entity.
type Resource string

// Operation is an action on a resource.
type Operation string

const (
	ResourceUser   Resource = "user"
	ResourceArtist Resource = "artist"
	ResourceSong   Resource = "song"

	OpCreate Operation = "create"
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpImport Operation = "import"
	OpExport Operation = "export"
)

// Permission names one guarded operation.
type Permission struct {
	Resource  Resource
	Operation Operation
}

func Perm(r Resource, op Operation) Permission {
	return Permission{Resource: r, Operation: op}
}

var (
	everyone      = []models.Role{models.RoleSuperAdmin, models.RoleArtistManager, models.RoleArtist}
	superAdmin    = []models.Role{models.RoleSuperAdmin}
	artistManager = []models.Role{models.RoleArtistManager}
	artist        = []models.Role{models.RoleArtist}
)

// permissions is the complete access policy. A permission missing from the
// table is denied to everyone.
var permissions = map[Permission][]models.Role{
	{ResourceUser, OpCreate}: superAdmin,
	{ResourceUser, OpList}:   superAdmin,
	{ResourceUser, OpGet}:    superAdmin,
	{ResourceUser, OpUpdate}: superAdmin,
	{ResourceUser, OpDelete}: superAdmin,

	{ResourceArtist, OpList}:   everyone,
	{ResourceArtist, OpGet}:    everyone,
	{ResourceArtist, OpCreate}: artistManager,
	{ResourceArtist, OpUpdate}: artistManager,
	{ResourceArtist, OpDelete}: artistManager,
	{ResourceArtist, OpImport}: artistManager,
	{ResourceArtist, OpExport}: {models.RoleSuperAdmin, models.RoleArtistManager},

	{ResourceSong, OpList}:   everyone,
	{ResourceSong, OpGet}:    everyone,
	{ResourceSong, OpCreate}: artist,
	{ResourceSong, OpUpdate}: artist,
	{ResourceSong, OpDelete}: artist,
}

// Allowed reports whether role may perform p.
func Allowed(p Permission, role models.Role) bool {
	for _, r := range permissions[p] {
		if r == role {
			return true
		}
	}
	return false
}
