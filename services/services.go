// Package services implements the user, artist and song operations:
// validation, existence checks, persistence and error classification.
package services

import (
	"context"
	"errors"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
	"github.com/faizan/roster/repository"
)

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, p pagination.Params) ([]models.User, int64, error)
}

// ArtistStore persists artists.
type ArtistStore interface {
	Create(ctx context.Context, a *models.Artist) error
	FindByID(ctx context.Context, id uint) (*models.Artist, error)
	Update(ctx context.Context, a *models.Artist) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, p pagination.Params) ([]models.Artist, int64, error)
}

// SongStore persists songs.
type SongStore interface {
	Create(ctx context.Context, s *models.Song) error
	FindByID(ctx context.Context, id uint) (*models.Song, error)
	Update(ctx context.Context, s *models.Song) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, p pagination.Params) ([]models.Song, int64, error)
	ListByArtist(ctx context.Context, artistID uint, p pagination.Params) ([]models.Song, int64, error)
}

// classify maps repository sentinels onto the API taxonomy using
// resource-specific messages.
func classify(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFound).Wrap(err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict(conflict).Wrap(err)
	case errors.Is(err, repository.ErrMissingReference):
		return apperr.NotFound("Artist not found").Wrap(err)
	}
	return apperr.From(err)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
