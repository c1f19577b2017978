package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vtc-pricing-service/internal/http/middleware"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/service"
)

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

type Handler struct {
	pricingService    *service.PricingService
	complianceService *service.ComplianceService
	fuelService       *service.FuelPriceService
	readiness         map[string]ReadinessCheck
	log               zerolog.Logger
}

func NewHandler(
	pricingService *service.PricingService,
	complianceService *service.ComplianceService,
	fuelService *service.FuelPriceService,
	readiness map[string]ReadinessCheck,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		pricingService:    pricingService,
		complianceService: complianceService,
		fuelService:       fuelService,
		readiness:         readiness,
		log:               log,
	}
}

func (h *Handler) createQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req model.TripInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.pricingService.Quote(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) validateCompliance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req service.ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.complianceService.Validate(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) complianceAlternatives(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req service.ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.complianceService.Alternatives(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if result.Selection.IsRequired && result.Selection.SelectedPlan == nil {
		h.log.Warn().
			Str("org_id", principal.OrgID.String()).
			Str("reason", result.Selection.Reason).
			Msg("staffing plan needs manual intervention")
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) buildInvoiceLines(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	draft, err := h.pricingService.BuildInvoice(principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(draft))
}

func (h *Handler) getFuelPrice(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	query, err := parseFuelQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, successResponse(h.fuelService.Current(c.Request.Context(), query)))
}

func (h *Handler) fuelPriceHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	query, err := parseFuelQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	entries, err := h.fuelService.History(c.Request.Context(), principal, query, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": entries}))
}

func (h *Handler) recordFuelPrice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req service.RecordFuelPriceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	entry, err := h.fuelService.Record(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(entry))
}

func (h *Handler) updatePricingSettings(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req service.UpdatePricingSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	settings, err := h.pricingService.UpdatePricingSettings(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(settings))
}

func (h *Handler) readyz(c *gin.Context) {
	status := gin.H{}
	ready := true
	for name, check := range h.readiness {
		if err := check(c.Request.Context()); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			status[name] = "down"
			ready = false
			continue
		}
		status[name] = "ok"
	}
	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorResponse(err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, errorResponse("request cancelled"))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseFuelQuery(c *gin.Context) (model.FuelPriceQuery, error) {
	query := model.FuelPriceQuery{
		CountryCode: strings.ToUpper(strings.TrimSpace(c.Query("country_code"))),
	}
	if query.CountryCode != "" && len(query.CountryCode) != 2 {
		return query, errors.New("country_code must have two letters")
	}
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("fuel_type"))); raw != "" {
		switch fuelType := model.FuelType(raw); fuelType {
		case model.FuelTypeDiesel, model.FuelTypeGasoline, model.FuelTypeLPG:
			query.FuelType = fuelType
		default:
			return query, errors.New("unknown fuel_type")
		}
	}
	return query, nil
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
