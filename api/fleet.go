package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

// FleetHandler serves the airline master data: airlines, airports, airplanes, crew, passengers and add-on types.
type FleetHandler struct {
	service fleet.FleetUseCase
}

func NewFleetHandler(service fleet.FleetUseCase) *FleetHandler {
	return &FleetHandler{service: service}
}

func (h *FleetHandler) Register(router *gin.RouterGroup) {
	airlines := router.Group("/airlines")
	airlines.POST("", h.createAirline)
	airlines.GET("", h.listAirlines)
	airlines.GET("/:name", h.getAirline)

	airports := router.Group("/airports")
	airports.POST("", h.createAirport)
	airports.GET("", h.listAirports)
	airports.GET("/:name", h.getAirport)

	airplanes := router.Group("/airplanes")
	airplanes.POST("", h.createAirplane)
	airplanes.GET("", h.listAirplanes)
	airplanes.GET("/:name", h.getAirplane)

	crew := router.Group("/crew")
	crew.POST("", h.createCrewMember)
	crew.GET("", h.listCrew)
	crew.GET("/:name", h.getCrewMember)

	passengers := router.Group("/passengers")
	passengers.POST("", h.createPassenger)
	passengers.GET("", h.listPassengers)
	passengers.GET("/:name", h.getPassenger)

	addOns := router.Group("/addon-types")
	addOns.POST("", h.createAddOnType)
	addOns.GET("", h.listAddOnTypes)
	addOns.GET("/:name", h.getAddOnType)
}

func (h *FleetHandler) createAirline(c *gin.Context) {
	var airline domain.Airline
	if !bindJSON(c, &airline) {
		return
	}
	created, err := h.service.CreateAirline(c.Request.Context(), airline)
	respond(c, http.StatusCreated, created, err)
}

func (h *FleetHandler) listAirlines(c *gin.Context) {
	airlines, err := h.service.ListAirlines(c.Request.Context())
	respond(c, http.StatusOK, airlines, err)
}

func (h *FleetHandler) getAirline(c *gin.Context) {
	airline, err := h.service.GetAirline(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, airline, err)
}

func (h *FleetHandler) createAirport(c *gin.Context) {
	var airport domain.Airport
	if !bindJSON(c, &airport) {
		return
	}
	created, err := h.service.CreateAirport(c.Request.Context(), airport)
	respond(c, http.StatusCreated, created, err)
}

func (h *FleetHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	respond(c, http.StatusOK, airports, err)
}

func (h *FleetHandler) getAirport(c *gin.Context) {
	airport, err := h.service.GetAirport(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, airport, err)
}

func (h *FleetHandler) createAirplane(c *gin.Context) {
	var airplane domain.Airplane
	if !bindJSON(c, &airplane) {
		return
	}
	created, err := h.service.CreateAirplane(c.Request.Context(), airplane)
	respond(c, http.StatusCreated, created, err)
}

func (h *FleetHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	respond(c, http.StatusOK, airplanes, err)
}

func (h *FleetHandler) getAirplane(c *gin.Context) {
	airplane, err := h.service.GetAirplane(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, airplane, err)
}

func (h *FleetHandler) createCrewMember(c *gin.Context) {
	var member domain.CrewMember
	if !bindJSON(c, &member) {
		return
	}
	created, err := h.service.CreateCrewMember(c.Request.Context(), member)
	respond(c, http.StatusCreated, created, err)
}

func (h *FleetHandler) listCrew(c *gin.Context) {
	crew, err := h.service.ListCrew(c.Request.Context())
	respond(c, http.StatusOK, crew, err)
}

func (h *FleetHandler) getCrewMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("name"), 10, 64)
	if err != nil {
		writeError(c, apperr.Validation("invalid crew member id %q", c.Param("name")))
		return
	}
	member, err := h.service.GetCrewMember(c.Request.Context(), id)
	respond(c, http.StatusOK, member, err)
}

func (h *FleetHandler) createPassenger(c *gin.Context) {
	var passenger domain.Passenger
	if !bindJSON(c, &passenger) {
		return
	}
	created, err := h.service.CreatePassenger(c.Request.Context(), passenger)
	respond(c, http.StatusCreated, created, err)
}

func (h *FleetHandler) listPassengers(c *gin.Context) {
	passengers, err := h.service.ListPassengers(c.Request.Context())
	respond(c, http.StatusOK, passengers, err)
}

func (h *FleetHandler) getPassenger(c *gin.Context) {
	passenger, err := h.service.GetPassenger(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, passenger, err)
}

func (h *FleetHandler) createAddOnType(c *gin.Context) {
	var addOn domain.AddOnType
	if !bindJSON(c, &addOn) {
		return
	}
	created, err := h.service.CreateAddOnType(c.Request.Context(), addOn)
	respond(c, http.StatusCreated, created, err)
}

func (h *FleetHandler) listAddOnTypes(c *gin.Context) {
	addOns, err := h.service.ListAddOnTypes(c.Request.Context())
	respond(c, http.StatusOK, addOns, err)
}

func (h *FleetHandler) getAddOnType(c *gin.Context) {
	addOn, err := h.service.GetAddOnType(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, addOn, err)
}
