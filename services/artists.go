package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
	"github.com/faizan/roster/validation"
)

const (
	msgArtistNotFound = "Artist not found"
	msgArtistExists   = "Artist already exists"
)

type ArtistService struct {
	artists  ArtistStore
	validate *validation.Validator
	log      *zap.Logger
}

func NewArtistService(artists ArtistStore, v *validation.Validator, log *zap.Logger) *ArtistService {
	return &ArtistService{artists: artists, validate: v, log: log.Named("artists")}
}

// Create inserts an artist. The unique index on name decides conflicts.
func (s *ArtistService) Create(ctx context.Context, in *validation.ArtistCreate) (*models.Artist, error) {
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}
	dob, err := models.ParseDate(in.Dob)
	if err != nil {
		return nil, apperr.BadRequest("Invalid date format for dob")
	}
	a := &models.Artist{
		Name:               in.Name,
		Dob:                dob,
		Gender:             models.Gender(in.Gender),
		Address:            in.Address,
		FirstReleaseYear:   *in.FirstReleaseYear,
		NoOfAlbumsReleased: *in.NoOfAlbumsReleased,
	}
	if err := s.artists.Create(ctx, a); err != nil {
		return nil, classify(err, msgArtistNotFound, msgArtistExists)
	}
	s.log.Info("artist created", zap.Uint("artist_id", a.ID))
	return a, nil
}

func (s *ArtistService) Get(ctx context.Context, id uint) (*models.Artist, error) {
	a, err := s.artists.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, msgArtistNotFound, msgArtistExists)
	}
	return a, nil
}

// Update merges the provided fields over the stored artist.
func (s *ArtistService) Update(ctx context.Context, id uint, in *validation.ArtistUpdate) (*models.Artist, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}

	setString(&a.Name, in.Name)
	setString(&a.Address, in.Address)
	setInt(&a.FirstReleaseYear, in.FirstReleaseYear)
	setInt(&a.NoOfAlbumsReleased, in.NoOfAlbumsReleased)
	if in.Dob != nil {
		dob, err := models.ParseDate(*in.Dob)
		if err != nil {
			return nil, apperr.BadRequest("Invalid date format for dob")
		}
		a.Dob = dob
	}
	if in.Gender != nil {
		a.Gender = models.Gender(*in.Gender)
	}

	if err := s.artists.Update(ctx, a); err != nil {
		return nil, classify(err, msgArtistNotFound, msgArtistExists)
	}
	return a, nil
}

// Delete removes the artist together with its songs.
func (s *ArtistService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.artists.Delete(ctx, id); err != nil {
		return classify(err, msgArtistNotFound, msgArtistExists)
	}
	s.log.Info("artist deleted", zap.Uint("artist_id", id))
	return nil
}

func (s *ArtistService) List(ctx context.Context, p pagination.Params) (pagination.Page[models.Artist], error) {
	artists, total, err := s.artists.List(ctx, p)
	if err != nil {
		return pagination.Page[models.Artist]{}, apperr.Internal(err)
	}
	return pagination.NewPage(artists, p, total), nil
}
