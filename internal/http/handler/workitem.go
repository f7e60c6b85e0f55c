package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker.app/api-server/internal/http/dto"
	"tracker.app/api-server/internal/http/middleware"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/service"
	"tracker.app/api-server/internal/workitem"
)

type WorkItemHandler struct {
	releaseService service.ReleaseService
}

func NewWorkItemHandler(releaseService service.ReleaseService) *WorkItemHandler {
	return &WorkItemHandler{releaseService: releaseService}
}

func (h *WorkItemHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.WorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	release, fieldErrs, err := h.releaseService.AddWorkItem(c.Request.Context(), actor, c.Param("id"), req.ToDraft())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, dto.FieldErrorsResponse{Errors: fieldErrs})
		return
	}
	c.JSON(http.StatusCreated, release)
}

func (h *WorkItemHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.WorkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	release, fieldErrs, err := h.releaseService.UpdateWorkItem(
		c.Request.Context(), actor, c.Param("id"), c.Param("itemID"), req.ToDraft())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, dto.FieldErrorsResponse{Errors: fieldErrs})
		return
	}
	c.JSON(http.StatusOK, release)
}

func (h *WorkItemHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	release, err := h.releaseService.DeleteWorkItem(c.Request.Context(), actor, c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

// ParentCandidates returns the release's items that can parent a work item
// of the requested type. EPIC and INCIDENT targets always get an empty set.
func (h *WorkItemHandler) ParentCandidates(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	target := model.WorkItemType(c.Query("type"))
	if !model.IsValidWorkItemType(target) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be a valid work item type"})
		return
	}

	release, err := h.releaseService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ParentCandidatesResponse{
		Candidates: workitem.ParentCandidates(target, release.WorkItems),
	})
}
