package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker.app/api-server/internal/http/dto"
	"tracker.app/api-server/internal/http/middleware"
	"tracker.app/api-server/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	params := service.ActivityListParams{
		Range:       c.DefaultQuery("range", "all"),
		Application: c.Query("application"),
		Action:      c.Query("action"),
		Resource:    c.Query("resource"),
		UserID:      c.Query("userId"),
		Search:      c.Query("search"),
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 50),
	}

	activities, total, hasMore, err := h.activityService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListActivitiesResponse{
		Activities: activities,
		TotalCount: total,
		HasMore:    hasMore,
	})
}

func (h *ActivityHandler) Stats(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	params := service.ActivityListParams{
		Range:       c.DefaultQuery("range", "all"),
		Application: c.Query("application"),
		Action:      c.Query("action"),
		Resource:    c.Query("resource"),
	}

	stats, err := h.activityService.Stats(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
