package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/dto"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/service-center/internal/usecase/appointment"
)

// JobHandler serves the mechanic side of the lifecycle.
type JobHandler struct {
	start    *ucAppointment.StartService
	addPart  *ucAppointment.AddPart
	addLabor *ucAppointment.AddLabor
	finish   *ucAppointment.FinishService
}

func NewJobHandler(
	start *ucAppointment.StartService,
	addPart *ucAppointment.AddPart,
	addLabor *ucAppointment.AddLabor,
	finish *ucAppointment.FinishService,
) *JobHandler {
	return &JobHandler{
		start:    start,
		addPart:  addPart,
		addLabor: addLabor,
		finish:   finish,
	}
}

type AddPartRequest struct {
	InventoryItemID uint `json:"inventory_item_id" binding:"required"`
	Quantity        int  `json:"quantity"`
}

type AddLaborRequest struct {
	Description string           `json:"description" binding:"required"`
	Cost        *decimal.Decimal `json:"cost"`
}

func (h *JobHandler) Start(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}

func (h *JobHandler) AddPart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AddPartRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.addPart.Execute(c.Request.Context(), ucAppointment.AddPartInput{
		Caller:          middleware.CallerFrom(c),
		AppointmentID:   id,
		InventoryItemID: req.InventoryItemID,
		Quantity:        req.Quantity,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}

func (h *JobHandler) AddLabor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AddLaborRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Cost == nil {
		httperr.Respond(c, httperr.Validation("cost_required", "Labor cost is required."))
		return
	}

	ap, err := h.addLabor.Execute(c.Request.Context(), ucAppointment.AddLaborInput{
		Caller:        middleware.CallerFrom(c),
		AppointmentID: id,
		Description:   req.Description,
		Cost:          *req.Cost,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}

func (h *JobHandler) Finish(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.finish.Execute(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(ap))
}
