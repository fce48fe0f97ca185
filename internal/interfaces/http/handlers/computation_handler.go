package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jurisdesk/prazo-engine/internal/application/computation"
	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// ComputationHandler exposes the deadline computation API.
type ComputationHandler struct {
	service computation.Service
	logger  logging.Logger
}

func NewComputationHandler(service computation.Service, logger logging.Logger) *ComputationHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ComputationHandler{service: service, logger: logger.Named("http")}
}

// Compute handles POST /api/v1/computations.
func (h *ComputationHandler) Compute(c *gin.Context) {
	var req computation.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "malformed computation request"))
		return
	}

	resp, err := h.service.Compute(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("computation rejected",
			logging.String("catalog_code", req.CatalogCode),
			logging.String("tribunal_code", req.TribunalCode),
			logging.Err(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCalendar handles GET /api/v1/calendars/:tribunal/:year.
func (h *ComputationHandler) GetCalendar(c *gin.Context) {
	tribunal := c.Param("tribunal")
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondError(c, errors.Newf(errors.ErrCodeBadRequest, "invalid year %q", c.Param("year")))
		return
	}

	cal, err := h.service.GetCalendar(c.Request.Context(), tribunal, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// SaveCalendar handles PUT /api/v1/calendars.  The body is a full
// CourtCalendar; holidays and suspensions replace the stored set.
func (h *ComputationHandler) SaveCalendar(c *gin.Context) {
	var cal calendar.CourtCalendar
	if err := c.ShouldBindJSON(&cal); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "malformed calendar"))
		return
	}

	if err := h.service.SaveCalendar(c.Request.Context(), &cal); err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("calendar upserted",
		logging.String("tribunal", cal.TribunalCode),
		logging.Int("year", cal.Year))
	c.Status(http.StatusNoContent)
}

// ListCatalog handles GET /api/v1/catalog.
func (h *ComputationHandler) ListCatalog(c *gin.Context) {
	entries, err := h.service.ListCatalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

// GetCatalogEntry handles GET /api/v1/catalog/:code.
func (h *ComputationHandler) GetCatalogEntry(c *gin.Context) {
	entry, err := h.service.GetCatalogEntry(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListServiceMethods handles GET /api/v1/service-methods.
func (h *ComputationHandler) ListServiceMethods(c *gin.Context) {
	methods := h.service.ListServiceMethods()
	c.JSON(http.StatusOK, gin.H{"methods": methods, "total": len(methods)})
}
