package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	ucVehicle "github.com/BruksfildServices01/service-center/internal/usecase/vehicle"
)

type VehicleHandler struct {
	vehicles *ucVehicle.Service
}

func NewVehicleHandler(vehicles *ucVehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type VehicleRequest struct {
	Make               *string `json:"make,omitempty"`
	Model              *string `json:"model,omitempty"`
	Year               *int    `json:"year,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
}

func (r VehicleRequest) input() ucVehicle.VehicleInput {
	return ucVehicle.VehicleInput{
		Make:               r.Make,
		Model:              r.Model,
		Year:               r.Year,
		RegistrationNumber: r.RegistrationNumber,
	}
}

func (h *VehicleHandler) Register(c *gin.Context) {
	var req VehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.vehicles.Register(c.Request.Context(), middleware.CallerFrom(c), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	v, err := h.vehicles.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req VehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.vehicles.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.vehicles.Remove(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
