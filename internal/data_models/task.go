package dto

import "time"

type TaskRequest struct {
	Description string     `json:"description" validate:"required,max=5000"`
	Deadline    *time.Time `json:"deadline"`
	Urgent      bool       `json:"urgent"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
