package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/usermenei/E-ses/internal/domain"
)

type pageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type pagination struct {
	Next *pageInfo `json:"next,omitempty"`
	Prev *pageInfo `json:"prev,omitempty"`
}

func ok(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func okMsg(c *gin.Context, code int, msg string, data any) {
	body := gin.H{"success": true, "message": msg}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "message": msg})
}

// failErr maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged and hidden behind a 500.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		fail(c, http.StatusForbidden, "Not authorized")
	case errors.Is(err, domain.ErrUnauthenticated):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrInvalidTransition):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Println("internal error:", err)
		fail(c, http.StatusInternalServerError, "Server error")
	}
}

// requireID rejects malformed identifiers up front so they surface as 400s,
// not as store lookups.
func requireID(c *gin.Context, param string) (string, bool) {
	id := c.Param(param)
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, "Invalid ID format")
		return "", false
	}
	return id, true
}
