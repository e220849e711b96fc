package dto

import "time"

type ProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Client      string     `json:"client" validate:"required,max=120"`
	Description string     `json:"description" validate:"required,min=10,max=256"`
	Deadline    *time.Time `json:"deadline" validate:"required"`
}

type ProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='In Progress' Completed Archived Cancelled"`
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ReminderRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}
