package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/middlewares"
	"github.com/usermenei/E-ses/internal/service"
)

type AuthHandler struct {
	svc          *service.AuthSvc
	cookieMaxAge int // seconds
	cookieSecure bool
}

func NewAuthHandler(svc *service.AuthSvc, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

// The token travels both ways: http-only cookie and response body.
func (h *AuthHandler) sendToken(c *gin.Context, code int, token string) {
	c.SetCookie("token", token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	c.JSON(code, gin.H{"success": true, "token": token})
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		TelephoneNumber string `json:"telephoneNumber"`
		Password        string `json:"password"`
		Role            string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	_, token, err := h.svc.Register(c, in.Name, in.Email, in.TelephoneNumber, in.Password, domain.Role(in.Role))
	if err != nil {
		failErr(c, err)
		return
	}
	h.sendToken(c, http.StatusCreated, token)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	_, token, err := h.svc.Login(c, in.Email, in.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, token)
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middlewares.Actor(c)
	u, rank, err := h.svc.Me(c, actor.ID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"telephoneNumber": u.TelephoneNumber,
		"numberOfEntries": u.NumberOfEntries,
		"rank":            rank.Rank,
		"title":           rank.Title,
		"discount":        fmt.Sprintf("%d%%", rank.Discount),
	})
}

// GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "none", 10, "/", "", h.cookieSecure, true)
	okMsg(c, http.StatusOK, "Logged out successfully", nil)
}
