package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
)

type ArtistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

func (r *ArtistRepository) Create(ctx context.Context, a *models.Artist) error {
	return translate("create artist", r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *ArtistRepository) FindByID(ctx context.Context, id uint) (*models.Artist, error) {
	var a models.Artist
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate("find artist", err)
	}
	return &a, nil
}

func (r *ArtistRepository) Update(ctx context.Context, a *models.Artist) error {
	err := r.db.WithContext(ctx).Model(a).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(a).Error
	return translate("update artist", err)
}

// Delete removes the artist and all of its songs in one transaction.
func (r *ArtistRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", id).Delete(&models.Song{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Artist{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("delete artist", err)
}

func (r *ArtistRepository) List(ctx context.Context, p pagination.Params) ([]models.Artist, int64, error) {
	artists, total, err := paginate[models.Artist](ctx, r.db, p, containsFold(p.Search, "name"))
	return artists, total, translate("list artists", err)
}

// EachBatch streams every artist in primary key order, batchSize rows at a time.
func (r *ArtistRepository) EachBatch(ctx context.Context, batchSize int, fn func([]models.Artist) error) error {
	var batch []models.Artist
	res := r.db.WithContext(ctx).FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	})
	return translate("stream artists", res.Error)
}
