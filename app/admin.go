package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/faizan/roster/models"
	"github.com/faizan/roster/validation"
)

// AdminInput describes the bootstrap super admin.
type AdminInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	Dob       string
	Gender    string
	Address   string
}

// CreateAdmin registers a super_admin through the normal user validation
// rules. It is the only way to create the first account, since user
// creation over HTTP already requires a super admin.
func (a *App) CreateAdmin(ctx context.Context, in AdminInput) (*models.User, error) {
	u, err := a.Users.Create(ctx, &validation.UserCreate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  in.Password,
		Dob:       in.Dob,
		Gender:    in.Gender,
		Role:      string(models.RoleSuperAdmin),
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	a.log.Info("super admin created", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	return u, nil
}
