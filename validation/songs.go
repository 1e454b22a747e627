package validation

// SongCreate is the payload for creating a song.
type SongCreate struct {
	Title     string `json:"title" validate:"required"`
	AlbumName string `json:"album_name" validate:"required"`
	Genre     string `json:"genre" validate:"required,oneof=rnb country classic rock jazz"`
	ArtistID  *uint  `json:"artist_id" validate:"required,gt=0"`
}

func (s *SongCreate) Normalize() {
	trim(&s.Title)
	trim(&s.AlbumName)
	lower(&s.Genre)
}

// SongUpdate carries only the fields to change.
type SongUpdate struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	AlbumName *string `json:"album_name" validate:"omitempty,min=1"`
	Genre     *string `json:"genre" validate:"omitempty,oneof=rnb country classic rock jazz"`
	ArtistID  *uint   `json:"artist_id" validate:"omitempty,gt=0"`
}

func (s *SongUpdate) Normalize() {
	trim(s.Title)
	trim(s.AlbumName)
	lower(s.Genre)
}
