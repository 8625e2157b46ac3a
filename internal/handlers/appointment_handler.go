package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-center/internal/dto"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/service-center/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book   *ucAppointment.BookAppointment
	get    *ucAppointment.GetAppointment
	cancel *ucAppointment.CancelAppointment
	assign *ucAppointment.AssignMechanic
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	get *ucAppointment.GetAppointment,
	cancel *ucAppointment.CancelAppointment,
	assign *ucAppointment.AssignMechanic,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:   book,
		get:    get,
		cancel: cancel,
		assign: assign,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	VehicleID   uint   `json:"vehicle_id" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type AssignMechanicRequest struct {
	MechanicID uint `json:"mechanic_id" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		Caller:         middleware.CallerFrom(c),
		VehicleID:      req.VehicleID,
		ServiceType:    req.ServiceType,
		Notes:          req.Notes,
		Date:           req.Date,
		Time:           req.Time,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointmentDTO(ap))
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}

// ======================================================
// ASSIGN
// ======================================================

func (h *AppointmentHandler) Assign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AssignMechanicRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.assign.Execute(c.Request.Context(), ucAppointment.AssignMechanicInput{
		Caller:        middleware.CallerFrom(c),
		AppointmentID: id,
		MechanicID:    req.MechanicID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}
