package validation

import "fmt"

// fieldMessages maps a JSON field to its default message and to overrides
// for specific validation tags.
var fieldMessages = map[string]struct {
	fallback string
	byTag    map[string]string
}{
	"first_name": {fallback: "First name is required"},
	"last_name":  {fallback: "Last name is required"},
	"address":    {fallback: "Address is required"},
	"email":      {fallback: "Invalid email"},
	"phone":      {fallback: "Phone number is required"},
	"password": {
		fallback: "Password must be at least 6 characters",
		byTag: map[string]string{
			"required": "Password is required",
			"maxbytes": "Password must be at most 72 bytes",
		},
	},
	"dob": {
		fallback: "Date of birth is required",
		byTag:    map[string]string{"datetime": "Invalid date format for dob"},
	},
	"gender": {
		fallback: "Gender is required",
		byTag:    map[string]string{"oneof": "Gender must be one of M, F, O"},
	},
	"role": {fallback: "Role must be one of super_admin, artist_manager, artist"},
	"name": {fallback: "Name is required"},
	"first_release_year": {
		fallback: "Invalid year",
		byTag:    map[string]string{"required": "First release year is required"},
	},
	"no_of_albums_released": {
		fallback: "Number of albums released cannot be negative",
		byTag:    map[string]string{"required": "Number of albums released is required"},
	},
	"title":      {fallback: "Title is required"},
	"album_name": {fallback: "Album name is required"},
	"genre": {
		fallback: "Genre is required",
		byTag:    map[string]string{"oneof": "Genre must be one of rnb, country, classic, rock, jazz"},
	},
	"artist_id": {
		fallback: "Artist id is required",
		byTag:    map[string]string{"gt": "Artist id must be a positive integer"},
	},
	"refreshToken": {fallback: "Refresh token is required"},
}

func messageFor(field, tag string) string {
	m, ok := fieldMessages[field]
	if !ok {
		return fmt.Sprintf("%s is invalid", field)
	}
	if msg, ok := m.byTag[tag]; ok {
		return msg
	}
	return m.fallback
}
