// Package repository persists users, artists and songs through gorm.
//
// Storage errors are translated into the sentinels below so callers never
// depend on a particular SQL dialect.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/faizan/roster/pagination"
)

var (
	// ErrNotFound means no row matched.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference means a foreign key rejected the write.
	ErrMissingReference = errors.New("referenced record does not exist")
)

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrMissingReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likeEscaper makes LIKE wildcards in a search term literal. The escape
// character is '!' since backslash handling differs between dialects.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsFold matches any of columns against a case-insensitive substring.
func containsFold(search string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
			args[i] = like
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// paginate runs the window query and the count query over the same filter.
func paginate[T any](ctx context.Context, db *gorm.DB, p pagination.Params, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	var model T
	var total int64
	if err := db.WithContext(ctx).Model(&model).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0, p.Limit)
	if total == 0 {
		return rows, 0, nil
	}
	err := db.WithContext(ctx).Model(&model).Scopes(scopes...).
		Order("id").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
