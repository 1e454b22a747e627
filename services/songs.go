package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
	"github.com/faizan/roster/validation"
)

const msgSongNotFound = "Music not found"

type SongService struct {
	songs    SongStore
	artists  ArtistStore
	validate *validation.Validator
	log      *zap.Logger
}

func NewSongService(songs SongStore, artists ArtistStore, v *validation.Validator, log *zap.Logger) *SongService {
	return &SongService{songs: songs, artists: artists, validate: v, log: log.Named("songs")}
}

// Create inserts a song after confirming its artist exists. The foreign key
// still guards against the artist disappearing between check and insert.
func (s *SongService) Create(ctx context.Context, in *validation.SongCreate) (*models.Song, error) {
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}
	if err := s.requireArtist(ctx, *in.ArtistID); err != nil {
		return nil, err
	}
	song := &models.Song{
		Title:     in.Title,
		AlbumName: in.AlbumName,
		ArtistID:  *in.ArtistID,
		Genre:     models.Genre(in.Genre),
	}
	if err := s.songs.Create(ctx, song); err != nil {
		return nil, classify(err, msgSongNotFound, msgSongNotFound)
	}
	s.log.Info("song created", zap.Uint("song_id", song.ID), zap.Uint("artist_id", song.ArtistID))
	return song, nil
}

func (s *SongService) Get(ctx context.Context, id uint) (*models.Song, error) {
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, msgSongNotFound, msgSongNotFound)
	}
	return song, nil
}

func (s *SongService) Update(ctx context.Context, id uint, in *validation.SongUpdate) (*models.Song, error) {
	song, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}
	if in.ArtistID != nil && *in.ArtistID != song.ArtistID {
		if err := s.requireArtist(ctx, *in.ArtistID); err != nil {
			return nil, err
		}
		song.ArtistID = *in.ArtistID
	}
	setString(&song.Title, in.Title)
	setString(&song.AlbumName, in.AlbumName)
	if in.Genre != nil {
		song.Genre = models.Genre(*in.Genre)
	}

	if err := s.songs.Update(ctx, song); err != nil {
		return nil, classify(err, msgSongNotFound, msgSongNotFound)
	}
	return song, nil
}

func (s *SongService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.songs.Delete(ctx, id); err != nil {
		return classify(err, msgSongNotFound, msgSongNotFound)
	}
	return nil
}

func (s *SongService) List(ctx context.Context, p pagination.Params) (pagination.Page[models.Song], error) {
	songs, total, err := s.songs.List(ctx, p)
	if err != nil {
		return pagination.Page[models.Song]{}, apperr.Internal(err)
	}
	return pagination.NewPage(songs, p, total), nil
}

// ListByArtist pages through one artist's songs. An unknown artist is
// NotFound; a known artist without songs is an empty page.
func (s *SongService) ListByArtist(ctx context.Context, artistID uint, p pagination.Params) (pagination.Page[models.Song], error) {
	if err := s.requireArtist(ctx, artistID); err != nil {
		return pagination.Page[models.Song]{}, err
	}
	songs, total, err := s.songs.ListByArtist(ctx, artistID, p)
	if err != nil {
		return pagination.Page[models.Song]{}, apperr.Internal(err)
	}
	return pagination.NewPage(songs, p, total), nil
}

func (s *SongService) requireArtist(ctx context.Context, artistID uint) error {
	if _, err := s.artists.FindByID(ctx, artistID); err != nil {
		return classify(err, msgArtistNotFound, msgArtistExists)
	}
	return nil
}
