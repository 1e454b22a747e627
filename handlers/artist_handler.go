package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/roster/services"
	"github.com/faizan/roster/validation"
)

type ArtistHandler struct {
	artists *services.ArtistService
}

func NewArtistHandler(artists *services.ArtistService) *ArtistHandler {
	return &ArtistHandler{artists: artists}
}

// Create godoc
// @Summary Create an artist
// @Tags artists
// @Accept json
// @Produce json
// @Success 201 {object} Response
// @Failure 400 {object} middleware.ErrorBody
// @Failure 409 {object} middleware.ErrorBody
// @Router /artists [post]
func (h *ArtistHandler) Create(c *gin.Context) {
	var in validation.ArtistCreate
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.artists.Create(c.Request.Context(), &in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Artist created successfully", a)
}

// List godoc
// @Summary List artists
// @Description Paginated, optionally filtered by a case-insensitive name search.
// @Tags artists
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 5, max 100"
// @Param search query string false "Name contains"
// @Success 200 {object} Response
// @Router /artists [get]
func (h *ArtistHandler) List(c *gin.Context) {
	p, err := h.artists.List(c.Request.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	page(c, p)
}

func (h *ArtistHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	a, err := h.artists.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", a)
}

func (h *ArtistHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in validation.ArtistUpdate
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.artists.Update(c.Request.Context(), id, &in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Artist updated successfully", a)
}

// Delete godoc
// @Summary Delete an artist and all of its songs
// @Tags artists
// @Router /artists/{id} [delete]
func (h *ArtistHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.artists.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Artist deleted successfully", nil)
}
