package model

import (
	"time"

	"project-hub.com/project-hub/internal/constants"
)

type Task struct {
	ID           string               `gorm:"primaryKey;size:36" json:"id"`
	ProjectID    string               `gorm:"size:36;not null;index" json:"project_id"`
	MemberID     string               `gorm:"size:36;not null;index" json:"member_id"`
	AssignedByID string               `gorm:"size:36;not null" json:"assigned_by_id"`
	Description  string               `gorm:"not null" json:"description"`
	Deadline     *time.Time           `json:"deadline,omitempty"`
	Urgent       bool                 `gorm:"not null;default:false" json:"urgent"`
	Status       constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Version      uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	SubmittedAt  *time.Time           `json:"submitted_at,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`

	Member     *User `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	AssignedBy *User `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}
