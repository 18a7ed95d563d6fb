package api

import (
	"net/http"

	"github.com/Domenick1991/airplanemode/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:name", h.get)
	router.PUT("/:name/gate", h.updateGate)
	router.POST("/:name/submit", h.submit)
	router.POST("/:name/cancel", h.cancel)
}

type gateRequest struct {
	GateNumber string `json:"gate_number" binding:"required"`
}

func (h *FlightHandler) create(c *gin.Context) {
	var input flights.CreateFlightInput
	if !bindJSON(c, &input) {
		return
	}
	flight, err := h.service.Create(c.Request.Context(), input)
	respond(c, http.StatusCreated, flight, err)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	respond(c, http.StatusOK, list, err)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.Get(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, flight, err)
}

func (h *FlightHandler) updateGate(c *gin.Context) {
	var req gateRequest
	if !bindJSON(c, &req) {
		return
	}
	flight, err := h.service.UpdateGate(c.Request.Context(), c.Param("name"), req.GateNumber)
	respond(c, http.StatusOK, flight, err)
}

func (h *FlightHandler) submit(c *gin.Context) {
	flight, err := h.service.Submit(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, flight, err)
}

func (h *FlightHandler) cancel(c *gin.Context) {
	flight, err := h.service.Cancel(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, flight, err)
}
