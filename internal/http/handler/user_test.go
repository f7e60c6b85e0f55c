package handler_test

import (
	"bytes"
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

var _ = Describe("UserHandler", func() {
	var (
		engine *gin.Engine
		users  *mockUserService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		users = &mockUserService{}

		api := engine.Group("/api", asUser(superAdmin()))
		router.UserRouter(api.Group("/users"), handler.NewUserHandler(users))
	})

	Describe("Create", func() {
		It("translates the request into user params", func() {
			var got service.UserParams
			users.createFn = func(_ context.Context, _ *model.User, params service.UserParams) (*model.User, error) {
				got = params
				return &model.User{Email: params.Email}, nil
			}

			body, _ := json.Marshal(map[string]any{
				"email":                "new@tracker.local",
				"name":                 "New User",
				"role":                 "ADMIN",
				"assignedApplications": []string{"NRE", "FMS"},
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.Role).To(Equal(model.RoleAdmin))
			Expect(got.AssignedApplications).To(ConsistOf(model.AppNRE, model.AppFMS))
			Expect(got.IsActive).To(BeTrue())
		})

		It("maps a duplicate email to 409", func() {
			users.createFn = func(context.Context, *model.User, service.UserParams) (*model.User, error) {
				return nil, service.ErrEmailTaken
			}

			body, _ := json.Marshal(map[string]any{
				"email": "dup@tracker.local",
				"name":  "Dup",
				"role":  "BASIC",
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("rejects a malformed email at the binding layer", func() {
			body, _ := json.Marshal(map[string]any{
				"email": "not-an-email",
				"name":  "Bad",
				"role":  "BASIC",
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Deactivate", func() {
		It("returns the deactivated record", func() {
			users.deactivateFn = func(_ context.Context, _ *model.User, id string) (*model.User, error) {
				return &model.User{Name: "Gone", IsActive: false}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/users/u1", nil)
			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["isActive"]).To(BeFalse())
		})
	})
})
