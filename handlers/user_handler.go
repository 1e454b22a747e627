package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/roster/metrics"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/services"
	"github.com/faizan/roster/validation"
)

type UserHandler struct {
	users   *services.UserService
	metrics *metrics.Metrics
}

func NewUserHandler(users *services.UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{users: users, metrics: m}
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	Message      string       `json:"message"`
	Data         *models.User `json:"data"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} Response
// @Failure 400 {object} middleware.ErrorBody
// @Failure 409 {object} middleware.ErrorBody
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var in validation.UserCreate
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.users.Create(c.Request.Context(), &in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "User created successfully", u)
}

// Login godoc
// @Summary Exchange credentials for an access and refresh token
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} middleware.ErrorBody
// @Failure 429 {object} middleware.ErrorBody
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var in validation.Login
	if !bindJSON(c, &in) {
		return
	}
	session, err := h.users.Login(c.Request.Context(), &in)
	h.metrics.Login(err == nil)
	if err != nil {
		fail(c, err)
		return
	}
	respondSession(c, "Login successful", session)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags users
// @Router /users/refresh-token [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var in validation.Refresh
	if !bindJSON(c, &in) {
		return
	}
	session, err := h.users.Refresh(c.Request.Context(), &in)
	if err != nil {
		fail(c, err)
		return
	}
	respondSession(c, "Token refreshed", session)
}

func (h *UserHandler) List(c *gin.Context) {
	p, err := h.users.List(c.Request.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	page(c, p)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in validation.UserUpdate
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.users.Update(c.Request.Context(), id, &in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "User updated successfully", u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "User deleted successfully", nil)
}

func respondSession(c *gin.Context, message string, s *services.Session) {
	c.JSON(http.StatusOK, SessionResponse{
		Message:      message,
		Data:         s.User,
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
	})
}
