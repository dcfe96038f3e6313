package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
	"github.com/ledgerline/ledgerline_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports and the
// period close.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	closingService   portssvc.ClosingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade, cs portssvc.ClosingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		closingService:   cs,
	}
}

// registerReportingRoutes registers routes for reports and the period close.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, closingService portssvc.ClosingSvcFacade) {
	h := newReportingHandler(reportingService, closingService)

	rg.GET("/ledger", h.generalLedger)
	rg.GET("/ledger/:accountID", h.ledgerAccount)
	rg.GET("/trial-balance", h.trialBalance)
	rg.GET("/trial-balance/adjusted", h.adjustedTrialBalance)

	financials := rg.Group("/financials")
	{
		financials.GET("/income-statement", h.incomeStatement)
		financials.GET("/balance-sheet", h.balanceSheet)
	}

	rg.POST("/close-period", h.closePeriod)
}

// generalLedger godoc
// @Summary General ledger
// @Description Reconstructs the T-account view of every active account with posted activity
// @Tags reports
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.LedgerAccount
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build ledger"
// @Security BearerAuth
// @Router /ledger [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	ledger, err := h.reportingService.GeneralLedger(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to build general ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build ledger"})
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// ledgerAccount godoc
// @Summary Ledger view of one account
// @Description Reconstructs the T-account view of a single account with running balances
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.LedgerAccount
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to build ledger"
// @Security BearerAuth
// @Router /ledger/{accountID} [get]
func (h *reportingHandler) ledgerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	ledger, err := h.reportingService.LedgerAccount(c.Request.Context(), accountID, params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		} else {
			logger.Error("Failed to build ledger account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// trialBalance godoc
// @Summary Trial balance
// @Description Generates the two-column trial balance from current account balances
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build trial balance"
// @Security BearerAuth
// @Router /trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// adjustedTrialBalance godoc
// @Summary Adjusted trial balance
// @Description Generates the trial balance with the aggregate effect of adjustment entries overlaid per account
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build adjusted trial balance"
// @Security BearerAuth
// @Router /trial-balance/adjusted [get]
func (h *reportingHandler) adjustedTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.AdjustedTrialBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build adjusted trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build adjusted trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// incomeStatement godoc
// @Summary Income statement
// @Description Summarizes revenue and expense balances. The optional date range is echoed back on the report.
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Start date (YYYY-MM-DD)"
// @Param   endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatement
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build income statement"
// @Security BearerAuth
// @Router /financials/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.IncomeStatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), params.StartDate, params.EndDate)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build income statement"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet
// @Description Summarizes asset, liability and equity balances as of now
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.BalanceSheet
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build balance sheet"
// @Security BearerAuth
// @Router /financials/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// closePeriod godoc
// @Summary Close the accounting period
// @Description Zeroes all revenue and expense accounts into retained earnings through closing entries, atomically
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   close body dto.ClosePeriodRequest true "Close date"
// @Success 200 {object} domain.PeriodCloseResult
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Missing retained earnings account or failed to close period"
// @Security BearerAuth
// @Router /close-period [post]
func (h *reportingHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.closingService.ClosePeriod(c.Request.Context(), req.CloseDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrConfiguration) {
			logger.Error("Retained earnings account missing", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "System configuration error"})
		} else {
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to close period"})
		}
		return
	}

	closedBy, _ := middleware.GetSubjectFromContext(c)
	logger.Info("Period closed",
		slog.String("closed_by", closedBy),
		slog.String("net_income", result.NetIncome.String()),
		slog.Int("closing_entries", len(result.ClosingEntries)))
	c.JSON(http.StatusOK, result)
}
