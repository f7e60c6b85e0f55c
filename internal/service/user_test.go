package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/service"
	"tracker.app/api-server/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		users    *mockUserStore
		activity *mockActivityStore
		svc      service.UserService
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		activity = &mockActivityStore{}
		svc = service.NewUserService(users, service.NewActivityService(activity))
	})

	Describe("Create", func() {
		validParams := func() service.UserParams {
			return service.UserParams{
				Email:                "new@tracker.local",
				Name:                 "New User",
				Role:                 model.RoleBasic,
				IsActive:             true,
				AssignedApplications: []model.Application{model.AppNRE},
			}
		}

		It("requires the manage-users capability", func() {
			_, err := svc.Create(ctx, adminFor(model.AppNRE), validParams())
			Expect(err).To(MatchError(service.ErrForbidden))

			_, err = svc.Create(ctx, basicFor(), validParams())
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("rejects an email already in use", func() {
			users.getByEmailFn = func(context.Context, string) (*model.User, error) {
				return &model.User{Email: "new@tracker.local"}, nil
			}
			_, err := svc.Create(ctx, superAdmin(), validParams())
			Expect(err).To(MatchError(service.ErrEmailTaken))
		})

		It("rejects an unknown role", func() {
			params := validParams()
			params.Role = "JANITOR"
			_, err := svc.Create(ctx, superAdmin(), params)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("rejects an unknown application assignment", func() {
			params := validParams()
			params.AssignedApplications = []model.Application{"nre"}
			_, err := svc.Create(ctx, superAdmin(), params)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("stores an empty assignment list instead of nil and audits", func() {
			params := validParams()
			params.AssignedApplications = nil

			user, err := svc.Create(ctx, superAdmin(), params)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.AssignedApplications).NotTo(BeNil())
			Expect(user.AssignedApplications).To(BeEmpty())

			Expect(activity.inserted).To(HaveLen(1))
			Expect(activity.inserted[0].Action).To(Equal(model.ActionUserCreated))
		})
	})

	Describe("Update", func() {
		It("never lets an admin modify a super admin", func() {
			target := superAdmin()
			users.getByIDFn = func(context.Context, primitive.ObjectID) (*model.User, error) {
				return target, nil
			}

			_, err := svc.Update(ctx, adminFor(), target.ID.Hex(), service.UserParams{
				Email: target.Email, Name: target.Name, Role: model.RoleBasic, IsActive: true,
			})
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("records the role change in the audit trail", func() {
			target := basicFor(model.AppNRE)
			users.getByIDFn = func(context.Context, primitive.ObjectID) (*model.User, error) {
				return target, nil
			}

			updated, err := svc.Update(ctx, superAdmin(), target.ID.Hex(), service.UserParams{
				Email:    target.Email,
				Name:     target.Name,
				Role:     model.RoleAdmin,
				IsActive: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(model.RoleAdmin))

			Expect(activity.inserted).To(HaveLen(1))
			Expect(activity.inserted[0].Details).To(ContainSubstring("role changed to ADMIN"))
		})

		It("maps a malformed id to invalid input", func() {
			_, err := svc.Update(ctx, superAdmin(), "not-a-hex-id", service.UserParams{
				Email: "x@tracker.local", Name: "X", Role: model.RoleBasic,
			})
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})
	})

	Describe("Deactivate", func() {
		It("retains the record with isActive off", func() {
			target := basicFor()
			users.getByIDFn = func(context.Context, primitive.ObjectID) (*model.User, error) {
				return target, nil
			}
			var updated *model.User
			users.updateFn = func(_ context.Context, u *model.User) error {
				updated = u
				return nil
			}

			user, err := svc.Deactivate(ctx, superAdmin(), target.ID.Hex())
			Expect(err).NotTo(HaveOccurred())
			Expect(user.IsActive).To(BeFalse())
			Expect(updated).NotTo(BeNil())

			Expect(activity.inserted).To(HaveLen(1))
			Expect(activity.inserted[0].Action).To(Equal(model.ActionUserDeactivated))
		})

		It("maps a missing user to ErrUserNotFound", func() {
			users.getByIDFn = func(context.Context, primitive.ObjectID) (*model.User, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.Deactivate(ctx, superAdmin(), primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})
})
