package models

// Gender is stored as a single letter.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Role decides which operations a user may perform.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleArtistManager Role = "artist_manager"
	RoleArtist        Role = "artist"
)

// Roles lists every role in privilege order.
var Roles = []Role{RoleSuperAdmin, RoleArtistManager, RoleArtist}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Genre is the musical genre of a song.
type Genre string

const (
	GenreRnB     Genre = "rnb"
	GenreCountry Genre = "country"
	GenreClassic Genre = "classic"
	GenreRock    Genre = "rock"
	GenreJazz    Genre = "jazz"
)

var Genres = []Genre{GenreRnB, GenreCountry, GenreClassic, GenreRock, GenreJazz}

func (g Genre) Valid() bool {
	for _, genre := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}
