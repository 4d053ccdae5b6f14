package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/middlewares"
	"github.com/usermenei/E-ses/internal/service"
)

type ReservationHandler struct {
	svc *service.ReservationSvc
}

func NewReservationHandler(svc *service.ReservationSvc) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// GET /reservations and GET /coworkingspaces/:id/reservations
func (h *ReservationHandler) List(c *gin.Context) {
	spaceID := c.Param("id") // empty on the top-level route
	if spaceID != "" {
		if _, err := uuid.Parse(spaceID); err != nil {
			fail(c, http.StatusBadRequest, "Invalid ID format")
			return
		}
	}
	out, err := h.svc.List(c, middlewares.Actor(c), spaceID)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}

// GET /reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	resv, err := h.svc.Get(c, middlewares.Actor(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, resv)
}

// POST /coworkingspaces/:id/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	spaceID, valid := requireID(c, "id")
	if !valid {
		return
	}
	var in struct {
		ApptDate time.Time `json:"apptDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	resv, err := h.svc.Create(c, middlewares.Actor(c), spaceID, in.ApptDate)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, resv)
}

// PUT /reservations/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	// The owner reference is not bindable here: whatever the client sends
	// for "user" is stripped by construction.
	var in struct {
		ApptDate       *time.Time                `json:"apptDate"`
		CoworkingSpace *string                   `json:"coworkingSpace"`
		Status         *domain.ReservationStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	patch := service.ReservationPatch{
		ApptDate:         in.ApptDate,
		CoworkingSpaceID: in.CoworkingSpace,
		Status:           in.Status,
	}
	resv, err := h.svc.Update(c, middlewares.Actor(c), id, patch)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, resv)
}

// DELETE /reservations/:id
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c, middlewares.Actor(c), id); err != nil {
		failErr(c, err)
		return
	}
	okMsg(c, http.StatusOK, "Reservation deleted successfully", nil)
}

// PUT /reservations/:id/confirm (admin)
func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	resv, err := h.svc.Confirm(c, middlewares.Actor(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	okMsg(c, http.StatusOK, "Reservation confirmed successfully", resv)
}
