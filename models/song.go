package models

import "time"

// Song is a track credited to one artist. It is persisted in the music table.
type Song struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	AlbumName string    `json:"album_name" gorm:"size:255;not null"`
	ArtistID  uint      `json:"artist_id" gorm:"not null;index"`
	Genre     Genre     `json:"genre" gorm:"size:16;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Song) TableName() string { return "music" }

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Artist{}, &Song{}}
}
