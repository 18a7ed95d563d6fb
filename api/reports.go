package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/reports/revenue-by-airline", h.revenueByAirline)
	router.GET("/reports/vacancy-per-airport", h.vacancyPerAirport)
}

// RegisterPublic mounts the website contexts; callers wrap them in the rate limiter.
func (h *ReportHandler) RegisterPublic(router *gin.RouterGroup) {
	router.GET("/airport-shops", h.airportShops)
}

func (h *ReportHandler) revenueByAirline(c *gin.Context) {
	booked := false
	if v := c.Query("booked"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(c, apperr.Validation("booked must be true or false, got %q", v))
			return
		}
		booked = parsed
	}
	report, err := h.service.RevenueByAirline(c.Request.Context(), booked)
	respond(c, http.StatusOK, report, err)
}

func (h *ReportHandler) vacancyPerAirport(c *gin.Context) {
	rows, err := h.service.VacancyPerAirport(c.Request.Context())
	respond(c, http.StatusOK, rows, err)
}

func (h *ReportHandler) airportShops(c *gin.Context) {
	page, err := h.service.AirportShops(c.Request.Context())
	respond(c, http.StatusOK, page, err)
}
