package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/faizan/roster/models"
)

// Artist builds a valid artist named name.
func Artist(name string) *models.Artist {
	return &models.Artist{
		Name:               name,
		Dob:                models.NewDate(time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC)),
		Gender:             models.GenderFemale,
		Address:            "1 Abbey Road, London",
		FirstReleaseYear:   2001,
		NoOfAlbumsReleased: 4,
	}
}

// SeedArtists inserts n artists named "Artist 01".."Artist n".
func SeedArtists(t testing.TB, db *gorm.DB, n int) []models.Artist {
	t.Helper()
	out := make([]models.Artist, 0, n)
	for i := 1; i <= n; i++ {
		a := Artist(fmt.Sprintf("Artist %02d", i))
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("seed artist: %v", err)
		}
		out = append(out, *a)
	}
	return out
}

// Song builds a valid song for artistID.
func Song(title string, artistID uint) *models.Song {
	return &models.Song{
		Title:     title,
		AlbumName: "Debut",
		ArtistID:  artistID,
		Genre:     models.GenreRock,
	}
}

// User builds a user with the given role. Password must already be hashed.
func User(email string, role models.Role, passwordHash string) *models.User {
	return &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  passwordHash,
		Phone:     "555-0100",
		Dob:       models.NewDate(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		Gender:    models.GenderOther,
		Address:   "221B Baker Street",
		Role:      role,
	}
}
