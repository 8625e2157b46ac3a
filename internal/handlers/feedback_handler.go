package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	ucFeedback "github.com/BruksfildServices01/service-center/internal/usecase/feedback"
)

type FeedbackHandler struct {
	submit *ucFeedback.SubmitFeedback
}

func NewFeedbackHandler(submit *ucFeedback.SubmitFeedback) *FeedbackHandler {
	return &FeedbackHandler{submit: submit}
}

type SubmitFeedbackRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	fb, err := h.submit.Execute(c.Request.Context(), ucFeedback.SubmitFeedbackInput{
		Caller:        middleware.CallerFrom(c),
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, fb)
}
