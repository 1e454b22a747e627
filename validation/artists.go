package validation

// ArtistCreate is the payload for creating an artist, also used for each
// imported CSV row.
type ArtistCreate struct {
	Name               string `json:"name" validate:"required"`
	Dob                string `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender             string `json:"gender" validate:"required,oneof=M F O"`
	FirstReleaseYear   *int   `json:"first_release_year" validate:"required,gte=1900"`
	Address            string `json:"address" validate:"required"`
	NoOfAlbumsReleased *int   `json:"no_of_albums_released" validate:"required,gte=0"`
}

func (a *ArtistCreate) Normalize() {
	trim(&a.Name)
	trim(&a.Dob)
	upper(&a.Gender)
	trim(&a.Address)
}

// ArtistUpdate carries only the fields to change.
type ArtistUpdate struct {
	Name               *string `json:"name" validate:"omitempty,min=1"`
	Dob                *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender             *string `json:"gender" validate:"omitempty,oneof=M F O"`
	FirstReleaseYear   *int    `json:"first_release_year" validate:"omitempty,gte=1900"`
	Address            *string `json:"address" validate:"omitempty,min=1"`
	NoOfAlbumsReleased *int    `json:"no_of_albums_released" validate:"omitempty,gte=0"`
}

func (a *ArtistUpdate) Normalize() {
	trim(a.Name)
	trim(a.Dob)
	upper(a.Gender)
	trim(a.Address)
}
