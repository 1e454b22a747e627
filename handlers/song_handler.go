package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/roster/services"
	"github.com/faizan/roster/validation"
)

// SongHandler serves the /music routes.
type SongHandler struct {
	songs *services.SongService
}

func NewSongHandler(songs *services.SongService) *SongHandler {
	return &SongHandler{songs: songs}
}

func (h *SongHandler) Create(c *gin.Context) {
	var in validation.SongCreate
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.songs.Create(c.Request.Context(), &in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Music created successfully", s)
}

func (h *SongHandler) List(c *gin.Context) {
	p, err := h.songs.List(c.Request.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	page(c, p)
}

// ListByArtist godoc
// @Summary List one artist's songs
// @Tags music
// @Produce json
// @Param artistId path int true "Artist id"
// @Success 200 {object} Response
// @Failure 404 {object} middleware.ErrorBody
// @Router /music/artist/{artistId} [get]
func (h *SongHandler) ListByArtist(c *gin.Context) {
	artistID, valid := pathID(c, "artistId")
	if !valid {
		return
	}
	p, err := h.songs.ListByArtist(c.Request.Context(), artistID, listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	page(c, p)
}

func (h *SongHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	s, err := h.songs.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", s)
}

func (h *SongHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in validation.SongUpdate
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.songs.Update(c.Request.Context(), id, &in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Music updated successfully", s)
}

func (h *SongHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.songs.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Music deleted", nil)
}
