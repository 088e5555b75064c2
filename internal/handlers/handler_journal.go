package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvc
	scale          int32
}

// registerJournalRoutes registers routes for the journal entry lifecycle.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvc, scale int32) {
	h := &journalHandler{journalService: journalService, scale: scale}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PATCH("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.PUT("/:id/lines", h.updateLines)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/unpost", h.unpostEntry)
		entries.PUT("/:id/post-time", h.changePostTime)
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	lines, err := dto.ToDomainLines(req.Lines, h.scale)
	if err != nil {
		respondWithError(c, err, "Failed to create journal entry")
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req.Description, req.EntryTime, lines, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.ID), slog.Int("line_count", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry, h.scale))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, h.scale))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	entries, nextToken, err := h.journalService.ListEntries(c.Request.Context(), params.ToEntryFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, nextToken, h.scale))
}

// updateEntry replaces the description and entry time of a draft.
func (h *journalHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), c.Param("id"), req.Description, req.EntryTime, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, h.scale))
}

func (h *journalHandler) updateLines(c *gin.Context) {
	var req dto.UpdateLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	lines, err := dto.ToDomainLines(req.Lines, h.scale)
	if err != nil {
		respondWithError(c, err, "Failed to update journal lines")
		return
	}

	entry, err := h.journalService.UpdateLines(c.Request.Context(), c.Param("id"), lines, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update journal lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, h.scale))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.journalService.DeleteEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// postEntry freezes a draft at the given post time.
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), c.Param("id"), req.PostTime, userID)
	if err != nil {
		respondWithError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.ID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, h.scale))
}

func (h *journalHandler) unpostEntry(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.journalService.UnpostEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "Failed to unpost journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *journalHandler) changePostTime(c *gin.Context) {
	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.journalService.ChangePostTime(c.Request.Context(), c.Param("id"), req.PostTime, userID); err != nil {
		respondWithError(c, err, "Failed to change post time")
		return
	}
	c.Status(http.StatusNoContent)
}
