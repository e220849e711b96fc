package model

import (
	"time"

	"project-hub.com/project-hub/internal/constants"
)

type Project struct {
	ID          string                  `gorm:"primaryKey;size:36" json:"id"`
	Name        string                  `gorm:"not null" json:"name"`
	Client      string                  `gorm:"not null" json:"client"`
	Description string                  `gorm:"not null" json:"description"`
	Deadline    time.Time               `gorm:"not null" json:"deadline"`
	Status      constants.ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	InviteToken string                  `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Version     uint                    `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`

	Members []Member `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

// Member ties a user to a project. The owner row always carries RoleAdmin.
type Member struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string         `gorm:"size:36;not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    string         `gorm:"size:36;not null;uniqueIndex:idx_project_user" json:"user_id"`
	Role      constants.Role `gorm:"type:varchar(10);not null" json:"role"`
	Owner     bool           `gorm:"not null;default:false" json:"owner"`
	CreatedAt time.Time      `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m Member) IsAdmin() bool {
	return m.Owner || m.Role == constants.RoleAdmin
}

// Allows reports whether the member satisfies the requested access level.
func (m Member) Allows(level constants.Access) bool {
	switch level {
	case constants.AccessOwner:
		return m.Owner
	case constants.AccessAdmin:
		return m.IsAdmin()
	default:
		return true
	}
}
