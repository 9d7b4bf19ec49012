package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/service"
)

type MailHandler struct{ queue service.MailQueue }

func NewMailHandler(queue service.MailQueue) *MailHandler {
	return &MailHandler{queue: queue}
}

// Send enqueues one plain-text mail. Delivery is asynchronous; a 202 only
// means the job was accepted.
func (h *MailHandler) Send(c *gin.Context) {
	var req dto.MailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.queue.EnqueueMail(c.Request.Context(), req.To, req.Subject, req.Text); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to enqueue mail"))
		return
	}
	c.Status(http.StatusAccepted)
}
