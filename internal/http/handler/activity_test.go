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
	"tracker.app/api-server/internal/service"
)

var _ = Describe("ActivityHandler", func() {
	var activities *mockActivityService

	newEngine := func(actor *model.User) *gin.Engine {
		gin.SetMode(gin.TestMode)
		engine := gin.New()
		api := engine.Group("/api", asUser(actor))
		router.ActivityRouter(api.Group("/activities"), handler.NewActivityHandler(activities))
		return engine
	}

	BeforeEach(func() {
		activities = &mockActivityService{}
	})

	Describe("List", func() {
		It("defaults to the unbounded range and standard page size", func() {
			var got service.ActivityListParams
			activities.listFn = func(_ context.Context, _ *model.User, params service.ActivityListParams) ([]model.Activity, int64, bool, error) {
				got = params
				return []model.Activity{}, 0, false, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
			newEngine(superAdmin()).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.Range).To(Equal("all"))
			Expect(got.Page).To(Equal(1))
			Expect(got.Limit).To(Equal(50))
		})

		It("wraps the page with its total and hasMore flag", func() {
			activities.listFn = func(context.Context, *model.User, service.ActivityListParams) ([]model.Activity, int64, bool, error) {
				return make([]model.Activity, 2), 120, true, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/activities?range=7d&page=1", nil)
			newEngine(superAdmin()).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["totalCount"]).To(BeEquivalentTo(120))
			Expect(resp["hasMore"]).To(BeTrue())
		})

		It("maps ErrForbidden to 403", func() {
			activities.listFn = func(context.Context, *model.User, service.ActivityListParams) ([]model.Activity, int64, bool, error) {
				return nil, 0, false, service.ErrForbidden
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
			newEngine(basicFor()).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(MatchJSON(`{"error": "Access Denied"}`))
		})
	})

	Describe("Stats", func() {
		It("never reaches the service for non super admins", func() {
			called := false
			activities.statsFn = func(context.Context, *model.User, service.ActivityListParams) (*model.ActivityStats, error) {
				called = true
				return &model.ActivityStats{}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/activities/stats", nil)
			newEngine(basicFor(model.AppNRE)).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(MatchJSON(`{"error": "Access Denied"}`))
			Expect(called).To(BeFalse())
		})

		It("returns the aggregate buckets for super admins", func() {
			activities.statsFn = func(context.Context, *model.User, service.ActivityListParams) (*model.ActivityStats, error) {
				return &model.ActivityStats{
					TotalCount:  10,
					UniqueUsers: 4,
					ByApplication: []model.CountBucket{
						{Label: "NRE", Count: 6},
						{Label: "System", Count: 4},
					},
				}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/activities/stats?range=30d", nil)
			newEngine(superAdmin()).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp model.ActivityStats
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.UniqueUsers).To(Equal(int64(4)))
			Expect(resp.ByApplication).To(HaveLen(2))
		})
	})
})
