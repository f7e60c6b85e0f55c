package dto

import (
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/service"
)

type UserRequest struct {
	Email                string   `json:"email" binding:"required,email"`
	Name                 string   `json:"name" binding:"required"`
	Role                 string   `json:"role" binding:"required"`
	IsActive             *bool    `json:"isActive"`
	AssignedApplications []string `json:"assignedApplications"`
}

func (r UserRequest) ToParams() service.UserParams {
	apps := make([]model.Application, len(r.AssignedApplications))
	for i, a := range r.AssignedApplications {
		apps[i] = model.Application(a)
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.UserParams{
		Email:                r.Email,
		Name:                 r.Name,
		Role:                 model.Role(r.Role),
		IsActive:             isActive,
		AssignedApplications: apps,
	}
}

type ListUsersResponse struct {
	Users []model.User `json:"users"`
}
