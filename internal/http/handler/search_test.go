package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tracker.app/api-server/internal/http/handler"
	"tracker.app/api-server/internal/http/router"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/service"
)

var _ = Describe("SearchHandler", func() {
	var (
		engine   *gin.Engine
		searches *mockSearchService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		searches = &mockSearchService{}

		api := engine.Group("/api", asUser(basicFor(model.AppNRE)))
		router.SearchRouter(api.Group("/search"), handler.NewSearchHandler(searches))
	})

	It("forwards query, limit and seq", func() {
		var gotQuery, gotSeq string
		var gotLimit int
		searches.searchFn = func(_ context.Context, _ *model.User, query string, limit int, seq string) (*service.SearchResult, error) {
			gotQuery, gotLimit, gotSeq = query, limit, seq
			return &service.SearchResult{Results: []service.SearchHit{}, Query: query, Seq: seq}, nil
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=login&limit=10&seq=7", nil)
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotQuery).To(Equal("login"))
		Expect(gotLimit).To(Equal(10))
		Expect(gotSeq).To(Equal("7"))
	})

	It("defaults the limit to the full page size", func() {
		var gotLimit int
		searches.searchFn = func(_ context.Context, _ *model.User, _ string, limit int, _ string) (*service.SearchResult, error) {
			gotLimit = limit
			return &service.SearchResult{Results: []service.SearchHit{}}, nil
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=login", nil)
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotLimit).To(Equal(search.DefaultLimit))
	})

	It("serves the short-query message as a normal 200", func() {
		searches.searchFn = func(_ context.Context, _ *model.User, query string, _ int, _ string) (*service.SearchResult, error) {
			return &service.SearchResult{
				Results: []service.SearchHit{},
				Query:   query,
				Message: search.MinQueryMessage,
			}, nil
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=a", nil)
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["message"]).To(Equal(search.MinQueryMessage))
		Expect(resp["results"]).To(BeEmpty())
	})
})
