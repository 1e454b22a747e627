package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u. A taken email surfaces as ErrDuplicate from the unique
// index; no row is written in that case.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return translate("create user", r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate("find user by email", err)
	}
	return &u, nil
}

// Update writes every column of u, including zero values.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Model(u).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(u).Error
	return translate("update user", err)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete user", gorm.ErrRecordNotFound)
	}
	return nil
}

// List pages through users, optionally filtered by name or email.
func (r *UserRepository) List(ctx context.Context, p pagination.Params) ([]models.User, int64, error) {
	users, total, err := paginate[models.User](ctx, r.db, p, containsFold(p.Search, "first_name", "last_name", "email"))
	return users, total, translate("list users", err)
}

// CountByRole returns the number of users with role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, translate("count users", err)
}
