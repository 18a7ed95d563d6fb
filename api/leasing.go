package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/service/leasing"
	"github.com/gin-gonic/gin"
)

// LeasingHandler serves rooms, shops, leases and the leasing settings.
type LeasingHandler struct {
	rooms    leasing.RoomUseCase
	shops    leasing.ShopUseCase
	leases   leasing.LeaseUseCase
	settings leasing.SettingsUseCase
}

func NewLeasingHandler(rooms leasing.RoomUseCase, shops leasing.ShopUseCase, leases leasing.LeaseUseCase, settings leasing.SettingsUseCase) *LeasingHandler {
	return &LeasingHandler{rooms: rooms, shops: shops, leases: leases, settings: settings}
}

func (h *LeasingHandler) Register(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	rooms.POST("", h.createRoom)
	rooms.GET("", h.listRooms)
	rooms.GET("/:name", h.getRoom)
	rooms.PUT("/:name", h.updateRoom)
	rooms.POST("/:name/submit", h.submitRoom)
	rooms.POST("/:name/cancel", h.cancelRoom)

	shops := router.Group("/shops")
	shops.POST("", h.createShop)
	shops.GET("", h.listShops)
	shops.GET("/:name", h.getShop)
	shops.GET("/:name/rooms", h.shopRooms)

	leases := router.Group("/leases")
	leases.POST("", h.createLease)
	leases.GET("", h.listLeases)
	leases.GET("/:name", h.getLease)
	leases.PUT("/:name", h.updateLease)
	leases.POST("/:name/submit", h.submitLease)
	leases.POST("/:name/cancel", h.cancelLease)
	leases.POST("/:name/next-period", h.nextPeriod)
	leases.POST("/:name/payments", h.receivePayment)
	leases.DELETE("/:name/payments/:payment", h.deletePayment)
	leases.POST("/:name/offboard", h.offboard)
	leases.POST("/:name/remind", h.remind)

	router.GET("/settings/leasing", h.getSettings)
	router.PUT("/settings/leasing", h.updateSettings)
	router.GET("/method/default_uom", h.defaultUOM)
}

type createLeaseRequest struct {
	LeasingOf    string              `json:"leasing_of" binding:"required"`
	LeasedFrom   string              `json:"leased_from" binding:"required"`
	LeasedTo     string              `json:"leased_to" binding:"required"`
	StartDate    string              `json:"start_date" binding:"required"`
	EndDate      string              `json:"end_date" binding:"required"`
	PeriodLength domain.PeriodLength `json:"period_length"`
}

type updateLeaseRequest struct {
	LeasedFrom   *string              `json:"leased_from"`
	StartDate    *string              `json:"start_date"`
	EndDate      *string              `json:"end_date"`
	PeriodLength *domain.PeriodLength `json:"period_length"`
}

type paymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	ReferenceNo string `json:"reference_no"`
	PaymentDate string `json:"payment_date"`
}

type offboardRequest struct {
	Date string `json:"date" binding:"required"`
}

// parseDate reads a YYYY-MM-DD request date.
func parseDate(field, value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be a YYYY-MM-DD date, got %q", field, value)
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *LeasingHandler) createRoom(c *gin.Context) {
	var input leasing.CreateRoomInput
	if !bindJSON(c, &input) {
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), input)
	respond(c, http.StatusCreated, room, err)
}

func (h *LeasingHandler) listRooms(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context(), c.Query("airport"))
	respond(c, http.StatusOK, rooms, err)
}

func (h *LeasingHandler) getRoom(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, room, err)
}

func (h *LeasingHandler) updateRoom(c *gin.Context) {
	var input leasing.UpdateRoomInput
	if !bindJSON(c, &input) {
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), c.Param("name"), input)
	respond(c, http.StatusOK, room, err)
}

func (h *LeasingHandler) submitRoom(c *gin.Context) {
	room, err := h.rooms.Submit(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, room, err)
}

func (h *LeasingHandler) cancelRoom(c *gin.Context) {
	room, err := h.rooms.Cancel(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, room, err)
}

func (h *LeasingHandler) createShop(c *gin.Context) {
	var input leasing.CreateShopInput
	if !bindJSON(c, &input) {
		return
	}
	shop, err := h.shops.Create(c.Request.Context(), input)
	respond(c, http.StatusCreated, shop, err)
}

func (h *LeasingHandler) listShops(c *gin.Context) {
	shops, err := h.shops.List(c.Request.Context())
	respond(c, http.StatusOK, shops, err)
}

func (h *LeasingHandler) getShop(c *gin.Context) {
	shop, err := h.shops.Get(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, shop, err)
}

func (h *LeasingHandler) shopRooms(c *gin.Context) {
	rooms, err := h.shops.Rooms(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, rooms, err)
}

func (h *LeasingHandler) createLease(c *gin.Context) {
	var req createLeaseRequest
	if !bindJSON(c, &req) {
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	lease, err := h.leases.Create(c.Request.Context(), leasing.CreateLeaseInput{
		LeasingOf:    req.LeasingOf,
		LeasedFrom:   req.LeasedFrom,
		LeasedTo:     req.LeasedTo,
		StartDate:    start,
		EndDate:      end,
		PeriodLength: req.PeriodLength,
	})
	respond(c, http.StatusCreated, lease, err)
}

func (h *LeasingHandler) listLeases(c *gin.Context) {
	leases, err := h.leases.List(c.Request.Context())
	respond(c, http.StatusOK, leases, err)
}

func (h *LeasingHandler) getLease(c *gin.Context) {
	lease, err := h.leases.Get(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, lease, err)
}

func (h *LeasingHandler) updateLease(c *gin.Context) {
	var req updateLeaseRequest
	if !bindJSON(c, &req) {
		return
	}
	start, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	lease, err := h.leases.Update(c.Request.Context(), c.Param("name"), leasing.UpdateLeaseInput{
		LeasedFrom:   req.LeasedFrom,
		StartDate:    start,
		EndDate:      end,
		PeriodLength: req.PeriodLength,
	})
	respond(c, http.StatusOK, lease, err)
}

func (h *LeasingHandler) submitLease(c *gin.Context) {
	lease, err := h.leases.Submit(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, lease, err)
}

func (h *LeasingHandler) cancelLease(c *gin.Context) {
	lease, err := h.leases.Cancel(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, lease, err)
}

func (h *LeasingHandler) nextPeriod(c *gin.Context) {
	lease, err := h.leases.NextPeriod(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, lease, err)
}

func (h *LeasingHandler) receivePayment(c *gin.Context) {
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	paid, err := parseOptionalDate("payment_date", &req.PaymentDate)
	if err != nil {
		writeError(c, err)
		return
	}
	lease, err := h.leases.ReceivePayment(c.Request.Context(), c.Param("name"), leasing.ReceivePaymentInput{
		AmountCents: req.AmountCents,
		ReferenceNo: req.ReferenceNo,
		PaymentDate: paid,
	})
	respond(c, http.StatusCreated, lease, err)
}

func (h *LeasingHandler) deletePayment(c *gin.Context) {
	if err := h.leases.DeletePayment(c.Request.Context(), c.Param("name"), c.Param("payment")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LeasingHandler) offboard(c *gin.Context) {
	var req offboardRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	lease, err := h.leases.Offboard(c.Request.Context(), c.Param("name"), date)
	respond(c, http.StatusOK, lease, err)
}

func (h *LeasingHandler) remind(c *gin.Context) {
	sent, err := h.leases.RemindTenant(c.Request.Context(), c.Param("name"))
	respond(c, http.StatusOK, gin.H{"sent": sent}, err)
}

func (h *LeasingHandler) getSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	respond(c, http.StatusOK, settings, err)
}

func (h *LeasingHandler) updateSettings(c *gin.Context) {
	var input leasing.UpdateSettingsInput
	if !bindJSON(c, &input) {
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), input)
	respond(c, http.StatusOK, settings, err)
}

func (h *LeasingHandler) defaultUOM(c *gin.Context) {
	uom, err := h.settings.DefaultUOM(c.Request.Context())
	respond(c, http.StatusOK, gin.H{"message": uom}, err)
}
