package validation

// UserCreate is the payload for creating a user.
type UserCreate struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"min=6,maxbytes=72"`
	Dob       string `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required,oneof=M F O"`
	Role      string `json:"role" validate:"omitempty,oneof=super_admin artist_manager artist"`
}

func (u *UserCreate) Normalize() {
	trim(&u.FirstName)
	trim(&u.LastName)
	trim(&u.Address)
	lower(&u.Email)
	trim(&u.Phone)
	trim(&u.Dob)
	upper(&u.Gender)
	lower(&u.Role)
}

// UserUpdate carries only the fields to change; nil fields keep their
// stored values.
type UserUpdate struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Address   *string `json:"address" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,min=1"`
	Password  *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	Dob       *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=M F O"`
	Role      *string `json:"role" validate:"omitempty,oneof=super_admin artist_manager artist"`
}

func (u *UserUpdate) Normalize() {
	trim(u.FirstName)
	trim(u.LastName)
	trim(u.Address)
	lower(u.Email)
	trim(u.Phone)
	trim(u.Dob)
	upper(u.Gender)
	lower(u.Role)
}

// Login is the credentials payload.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *Login) Normalize() {
	lower(&l.Email)
}

// Refresh carries a refresh token to exchange.
type Refresh struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (r *Refresh) Normalize() {
	trim(&r.RefreshToken)
}
