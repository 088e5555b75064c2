package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvc
}

func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvc) {
	h := &fiscalYearHandler{fiscalYearService: fiscalYearService}

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:id", h.getFiscalYear)
		years.PUT("/:id", h.updateFiscalYear)
		years.DELETE("/:id", h.deleteFiscalYear)
		years.POST("/:id/close", h.closeFiscalYear)
		years.POST("/:id/reverse", h.reverseFiscalYear)
		years.PUT("/:id/reversal-time", h.changeReversalTime)
	}
}

func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), req.Name, req.BeginTime, req.EndTime, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create fiscal year")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year created", slog.String("fiscal_year_id", fy.ID))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	fy, err := h.fiscalYearService.GetFiscalYear(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalYearsResponse(years))
}

func (h *fiscalYearHandler) updateFiscalYear(c *gin.Context) {
	var req dto.UpdateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.UpdateFiscalYear(c.Request.Context(), c.Param("id"), req.Name, req.BeginTime, req.EndTime, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) deleteFiscalYear(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.fiscalYearService.DeleteFiscalYear(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete fiscal year")
		return
	}
	c.Status(http.StatusNoContent)
}

// closeFiscalYear closes an open year; every entry dated inside it must be posted.
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	var req dto.CloseFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), c.Param("id"), req.CloseTime, userID)
	if err != nil {
		respondWithError(c, err, "Failed to close fiscal year")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year closed", slog.String("fiscal_year_id", fy.ID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) reverseFiscalYear(c *gin.Context) {
	var req dto.ReverseFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.ReverseFiscalYear(c.Request.Context(), c.Param("id"), req.ReversalTime, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse fiscal year")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year reversed", slog.String("fiscal_year_id", fy.ID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) changeReversalTime(c *gin.Context) {
	var req dto.ReverseFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.fiscalYearService.ChangeReversalTime(c.Request.Context(), c.Param("id"), req.ReversalTime, userID); err != nil {
		respondWithError(c, err, "Failed to change reversal time")
		return
	}
	c.Status(http.StatusNoContent)
}
