package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/dto"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	"github.com/BruksfildServices01/service-center/internal/models"
	ucInventory "github.com/BruksfildServices01/service-center/internal/usecase/inventory"
)

type InventoryHandler struct {
	items *ucInventory.Service
	order *ucInventory.OrderFromSupplier
}

func NewInventoryHandler(items *ucInventory.Service, order *ucInventory.OrderFromSupplier) *InventoryHandler {
	return &InventoryHandler{items: items, order: order}
}

// --------- Requests ---------

type InventoryItemRequest struct {
	Name              *string          `json:"name,omitempty"`
	PartNumber        *string          `json:"part_number,omitempty"`
	Supplier          *string          `json:"supplier,omitempty"`
	Unit              *string          `json:"unit,omitempty"`
	Quantity          *int             `json:"quantity,omitempty"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice         *decimal.Decimal `json:"sale_price,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
}

func (r InventoryItemRequest) input() ucInventory.ItemInput {
	return ucInventory.ItemInput{
		Name:              r.Name,
		PartNumber:        r.PartNumber,
		Supplier:          r.Supplier,
		Unit:              r.Unit,
		Quantity:          r.Quantity,
		CostPrice:         r.CostPrice,
		SalePrice:         r.SalePrice,
		LowStockThreshold: r.LowStockThreshold,
	}
}

type ReceiveStockRequest struct {
	Quantity int `json:"quantity"`
}

type SupplierOrderRequest struct {
	Quantity      int    `json:"quantity"`
	SupplierEmail string `json:"supplier_email" binding:"required"`
}

// --------- Handlers ---------

func (h *InventoryHandler) Create(c *gin.Context) {
	var req InventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.items.Create(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewInventoryItemDTO(item))
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryItemDTO(item))
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req InventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryItemDTO(item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Receive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ReceiveStockRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.items.Receive(c.Request.Context(), middleware.CallerFrom(c).UserID, id, req.Quantity)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryItemDTO(item))
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.items.LowStock(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]dto.InventoryItemDTO, 0, len(items))
	for i := range items {
		out = append(out, dto.NewInventoryItemDTO(&items[i]))
	}
	c.JSON(http.StatusOK, dto.NewList(out))
}

func (h *InventoryHandler) Order(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SupplierOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.order.Execute(c.Request.Context(), ucInventory.OrderInput{
		ItemID:        id,
		Quantity:      req.Quantity,
		SupplierEmail: req.SupplierEmail,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message_id": msg.ID,
		"status":     models.OutboxPending,
		"recipient":  msg.Recipient,
	})
}
