package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker.app/api-server/internal/http/middleware"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/service"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search serves both the full search page (default limit 50) and the
// quick-search widget (limit=10). The optional seq parameter is echoed back
// so the client can discard stale responses.
func (h *SearchHandler) Search(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	limit := queryInt(c, "limit", search.DefaultLimit)
	result, err := h.searchService.Search(c.Request.Context(), actor, c.Query("q"), limit, c.Query("seq"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
