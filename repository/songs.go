package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
)

type SongRepository struct {
	db *gorm.DB
}

func NewSongRepository(db *gorm.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts s. An artist_id with no artist row surfaces as
// ErrMissingReference.
func (r *SongRepository) Create(ctx context.Context, s *models.Song) error {
	return translate("create song", r.db.WithContext(ctx).Create(s).Error)
}

func (r *SongRepository) FindByID(ctx context.Context, id uint) (*models.Song, error) {
	var s models.Song
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate("find song", err)
	}
	return &s, nil
}

func (r *SongRepository) Update(ctx context.Context, s *models.Song) error {
	err := r.db.WithContext(ctx).Model(s).
		Select("*").
		Omit("id", "created_at").
		Updates(s).Error
	return translate("update song", err)
}

func (r *SongRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Song{}, id)
	if res.Error != nil {
		return translate("delete song", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete song", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *SongRepository) List(ctx context.Context, p pagination.Params) ([]models.Song, int64, error) {
	songs, total, err := paginate[models.Song](ctx, r.db, p, containsFold(p.Search, "title", "album_name"))
	return songs, total, translate("list songs", err)
}

func (r *SongRepository) ListByArtist(ctx context.Context, artistID uint, p pagination.Params) ([]models.Song, int64, error) {
	byArtist := func(db *gorm.DB) *gorm.DB { return db.Where("artist_id = ?", artistID) }
	songs, total, err := paginate[models.Song](ctx, r.db, p, byArtist, containsFold(p.Search, "title", "album_name"))
	return songs, total, translate("list songs by artist", err)
}
