package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/auth"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/pagination"
	"github.com/faizan/roster/repository"
	"github.com/faizan/roster/validation"
)

const (
	msgUserNotFound       = "User not found"
	msgEmailTaken         = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidRefresh     = "Invalid refresh token"
)

// Session is returned by login and refresh.
type Session struct {
	User   *models.User
	Tokens auth.TokenPair
}

type UserService struct {
	users    UserStore
	validate *validation.Validator
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	log      *zap.Logger

	decoyOnce sync.Once
	decoyHash string
}

func NewUserService(users UserStore, v *validation.Validator, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, log *zap.Logger) *UserService {
	return &UserService{
		users:    users,
		validate: v,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.Named("users"),
	}
}

// Create registers a user. Role defaults to artist.
func (s *UserService) Create(ctx context.Context, in *validation.UserCreate) (*models.User, error) {
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}
	dob, err := models.ParseDate(in.Dob)
	if err != nil {
		return nil, apperr.BadRequest("Invalid date format for dob")
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	role := models.Role(in.Role)
	if role == "" {
		role = models.RoleArtist
	}

	u := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Phone:     in.Phone,
		Dob:       dob,
		Gender:    models.Gender(in.Gender),
		Address:   in.Address,
		Role:      role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, classify(err, msgUserNotFound, msgEmailTaken)
	}
	s.log.Info("user created", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "", apperr.BadRequest("Password must be at most 72 bytes")
	case err != nil:
		return "", apperr.Internal(err)
	}
	return hash, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, msgUserNotFound, msgEmailTaken)
	}
	return u, nil
}

// Update merges the provided fields over the stored user.
func (s *UserService) Update(ctx context.Context, id uint, in *validation.UserUpdate) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}

	setString(&u.FirstName, in.FirstName)
	setString(&u.LastName, in.LastName)
	setString(&u.Address, in.Address)
	setString(&u.Email, in.Email)
	setString(&u.Phone, in.Phone)
	if in.Dob != nil {
		dob, err := models.ParseDate(*in.Dob)
		if err != nil {
			return nil, apperr.BadRequest("Invalid date format for dob")
		}
		u.Dob = dob
	}
	if in.Gender != nil {
		u.Gender = models.Gender(*in.Gender)
	}
	if in.Role != nil {
		u.Role = models.Role(*in.Role)
	}
	if in.Password != nil {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, classify(err, msgUserNotFound, msgEmailTaken)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return classify(err, msgUserNotFound, msgEmailTaken)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *UserService) List(ctx context.Context, p pagination.Params) (pagination.Page[models.User], error) {
	users, total, err := s.users.List(ctx, p)
	if err != nil {
		return pagination.Page[models.User]{}, apperr.Internal(err)
	}
	return pagination.NewPage(users, p, total), nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error, and both pay for a bcrypt comparison.
func (s *UserService) Login(ctx context.Context, in *validation.Login) (*Session, error) {
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
		_, _ = s.hasher.Verify(s.decoy(), in.Password)
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	ok, err := s.hasher.Verify(u.Password, in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		s.log.Debug("login rejected", zap.Uint("user_id", u.ID))
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	return s.session(u)
}

// Refresh exchanges a refresh token for a new pair. The user is reloaded so
// that deleted accounts and role changes take effect immediately.
func (s *UserService) Refresh(ctx context.Context, in *validation.Refresh) (*Session, error) {
	if err := s.validate.Check(in); err != nil {
		return nil, err
	}
	claims, err := s.tokens.ParseRefresh(in.RefreshToken)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefresh).Wrap(err)
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidRefresh).Wrap(err)
		}
		return nil, apperr.Internal(err)
	}
	return s.session(u)
}

func (s *UserService) session(u *models.User) (*Session, error) {
	pair, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Session{User: u, Tokens: pair}, nil
}

func (s *UserService) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash("decoy-password-for-unknown-accounts")
		if err != nil {
			s.log.Warn("decoy hash", zap.Error(err))
			return
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}
