package api

import (
	"net/http"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/service/tickets"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.book)
	router.GET("/:name", h.get)
	router.PUT("/:name", h.update)
	router.PUT("/:name/status", h.setStatus)
	router.PUT("/:name/seat", h.assignSeat)
	router.POST("/:name/submit", h.submit)
	router.POST("/:name/cancel", h.cancel)
}

type statusRequest struct {
	Status domain.TicketStatus `json:"status" binding:"required"`
}

type seatRequest struct {
	Seat string `json:"seat" binding:"required"`
}

func (h *TicketHandler) book(c *gin.Context) {
	var input tickets.BookTicketInput
	if !bindJSON(c, &input) {
		return
	}
	ticket, err := h.service.Book(c.Request.Context(), input)
	respond(c, http.StatusCreated, ticket, err)
}

func (h *TicketHandler) get(c *gin.Context) {
	ticket, err := h.service.Get(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, ticket, err)
}

func (h *TicketHandler) update(c *gin.Context) {
	var input tickets.UpdateTicketInput
	if !bindJSON(c, &input) {
		return
	}
	ticket, err := h.service.Update(c.Request.Context(), c.Param("name"), input)
	respond(c, http.StatusOK, ticket, err)
}

func (h *TicketHandler) setStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.service.SetStatus(c.Request.Context(), c.Param("name"), req.Status)
	respond(c, http.StatusOK, ticket, err)
}

func (h *TicketHandler) assignSeat(c *gin.Context) {
	var req seatRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.service.AssignSeat(c.Request.Context(), c.Param("name"), req.Seat)
	respond(c, http.StatusOK, ticket, err)
}

func (h *TicketHandler) submit(c *gin.Context) {
	ticket, err := h.service.Submit(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, ticket, err)
}

func (h *TicketHandler) cancel(c *gin.Context) {
	ticket, err := h.service.Cancel(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, ticket, err)
}
