package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/pagination"
)

// Response is the success envelope.
type Response struct {
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// fail hands err to the error middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func ok(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Message: message, Data: data})
}

func page[T any](c *gin.Context, p pagination.Page[T]) {
	meta := p.Meta
	c.JSON(http.StatusOK, Response{Data: p.Items, Pagination: &meta})
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, apperr.BadRequest("Invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into dst, reporting malformed input as
// BadRequest. Field rules are checked later by the services.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		fail(c, apperr.BadRequest("Request body is required"))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fail(c, apperr.BadRequest("Invalid value for "+typeErr.Field).Wrap(err))
	default:
		fail(c, apperr.BadRequest("Invalid JSON body").Wrap(err))
	}
	return false
}

func listParams(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"), c.Query("search"))
}
