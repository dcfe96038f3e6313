package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
	"github.com/ledgerline/ledgerline_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
	}

	adjustments := rg.Group("/adjustments")
	{
		adjustments.POST("", h.createAdjustmentEntry)
		adjustments.GET("", h.listAdjustments)
	}
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Validates and posts a balanced journal entry, updating every referenced account balance atomically
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced entry, bad line amounts or inactive account"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.respondEntryError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// createAdjustmentEntry godoc
// @Summary Post an adjusting entry
// @Description Posts a journal entry flagged as an adjustment of the given classification
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateAdjustmentEntryRequest true "Adjusting entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced entry or unknown adjustment type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to post adjusting entry"
// @Security BearerAuth
// @Router /adjustments [post]
func (h *journalHandler) createAdjustmentEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdjustmentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdjustmentEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateAdjustmentEntry(c.Request.Context(), req)
	if err != nil {
		h.respondEntryError(c, err, "Failed to post adjusting entry")
		return
	}

	logger.Info("Adjusting entry posted", slog.String("entry_id", entry.EntryID), slog.String("adjustment_type", string(req.AdjustmentType)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// respondEntryError maps posting pipeline errors onto HTTP statuses.
func (h *journalHandler) respondEntryError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		// A referenced account does not exist; a client error, not a 404.
		logger.Warn("Referenced account not found posting entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to post entry in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves a journal entry with its debit and credit lines
// @Tags journal
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		} else {
			logger.Error("Failed to get entry from service", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve journal entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves journal entries, optionally filtered by adjustment flag, adjustment type or date range
// @Tags journal
// @Produce  json
// @Param   isAdjustment query bool false "Only adjustment (or only regular) entries"
// @Param   adjustmentType query string false "Adjustment classification"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.ListEntriesFilter{
		IsAdjustment: params.IsAdjustment,
		From:         params.From,
		To:           params.To,
	}
	if params.AdjustmentType != nil {
		at := domain.AdjustmentType(*params.AdjustmentType)
		if !domain.ValidAdjustmentType(at) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown adjustment type: " + *params.AdjustmentType})
			return
		}
		filter.AdjustmentType = &at
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries))
}

// listAdjustments godoc
// @Summary List adjustment entries
// @Description Retrieves adjustment entries, optionally filtered by classification and date range
// @Tags journal
// @Produce  json
// @Param   adjustmentType query string false "Adjustment classification"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list adjustment entries"
// @Security BearerAuth
// @Router /adjustments [get]
func (h *journalHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAdjustmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	isAdjustment := true
	filter := portsrepo.ListEntriesFilter{
		IsAdjustment: &isAdjustment,
		From:         params.From,
		To:           params.To,
	}
	if params.AdjustmentType != nil {
		at := domain.AdjustmentType(*params.AdjustmentType)
		if !domain.ValidAdjustmentType(at) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown adjustment type: " + *params.AdjustmentType})
			return
		}
		filter.AdjustmentType = &at
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list adjustment entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list adjustment entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries))
}
