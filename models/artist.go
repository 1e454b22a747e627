package models

import "time"

type Artist struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Dob                Date      `json:"dob" gorm:"not null"`
	Gender             Gender    `json:"gender" gorm:"size:1"`
	Address            string    `json:"address" gorm:"size:255;not null"`
	FirstReleaseYear   int       `json:"first_release_year" gorm:"not null"`
	NoOfAlbumsReleased int       `json:"no_of_albums_released" gorm:"not null"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Songs              []Song    `json:"-" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
}

func (Artist) TableName() string { return "artist" }
