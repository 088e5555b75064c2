package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type tagHandler struct {
	tagService portssvc.TagSvc
}

func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvc) {
	h := &tagHandler{tagService: tagService}

	rg.POST("/accounts/:code/tags", h.assignTag)
	rg.GET("/accounts/:code/tags", h.listTagAssignments)

	assignments := rg.Group("/tag-assignments")
	{
		assignments.DELETE("/:id", h.removeTagAssignment)
		assignments.PUT("/:id", h.updateTagAssignment)
	}
}

func (h *tagHandler) assignTag(c *gin.Context) {
	var req dto.AssignTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	assignment, err := h.tagService.AssignTag(c.Request.Context(), c.Param("code"), req.TagName, userID)
	if err != nil {
		respondWithError(c, err, "Failed to assign tag")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Tag assigned",
		slog.Int64("assignment_id", assignment.ID), slog.String("tag", assignment.TagName))
	c.JSON(http.StatusCreated, dto.ToTagAssignmentResponse(assignment))
}

func (h *tagHandler) listTagAssignments(c *gin.Context) {
	assignments, err := h.tagService.ListTagAssignments(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err, "Failed to list tag assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTagAssignmentsResponse(assignments))
}

func (h *tagHandler) removeTagAssignment(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.tagService.RemoveTagAssignment(c.Request.Context(), id, userID); err != nil {
		respondWithError(c, err, "Failed to remove tag assignment")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateTagAssignment answers with TagAssignmentImmutable for any existing assignment.
func (h *tagHandler) updateTagAssignment(c *gin.Context) {
	id, ok := assignmentID(c)
	if !ok {
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}
	if err := h.tagService.UpdateTagAssignment(c.Request.Context(), id, userID); err != nil {
		respondWithError(c, err, "Failed to update tag assignment")
		return
	}
	c.Status(http.StatusNoContent)
}

func assignmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(c, apperrors.New(apperrors.KindInvalidInput, "invalid tag assignment id %q", c.Param("id")), "Invalid tag assignment id")
		return 0, false
	}
	return id, true
}
