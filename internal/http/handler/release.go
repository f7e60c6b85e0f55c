package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tracker.app/api-server/internal/http/dto"
	"tracker.app/api-server/internal/http/middleware"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/service"
)

type ReleaseHandler struct {
	releaseService service.ReleaseService
}

func NewReleaseHandler(releaseService service.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{releaseService: releaseService}
}

func (h *ReleaseHandler) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	filter := search.ReleaseFilter{
		Type:            model.ReleaseType(c.Query("type")),
		ApplicationName: model.Application(c.Query("applicationName")),
		Search:          c.Query("search"),
		Page:            queryInt(c, "page", 1),
		Limit:           queryInt(c, "limit", 20),
	}
	if raw := c.Query("releaseDate"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "releaseDate must be YYYY-MM-DD"})
			return
		}
		filter.ReleaseDate = &date
	}

	releases, totalPages, err := h.releaseService.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListReleasesResponse{
		Releases:   releases,
		TotalPages: totalPages,
	})
}

func (h *ReleaseHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	release, err := h.releaseService.Create(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, release)
}

func (h *ReleaseHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	release, err := h.releaseService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

func (h *ReleaseHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.UpdateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	release, err := h.releaseService.Update(c.Request.Context(), actor, c.Param("id"), req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

func (h *ReleaseHandler) Publish(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.PublishReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isPublished is required"})
		return
	}

	release, err := h.releaseService.SetPublished(c.Request.Context(), actor, c.Param("id"), *req.IsPublished)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

// Delete is irreversible and cascades to the release's work items. The
// confirmation step lives in the client; by the time the call lands here it
// is final.
func (h *ReleaseHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.releaseService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "release deleted"})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
