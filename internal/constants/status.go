package constants

type TaskStatus string

const (
	StatusTodo           TaskStatus = "To-do"
	StatusAwaitingReview TaskStatus = "Awaiting Review"
	StatusCompleted      TaskStatus = "Completed"
)

type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectArchived   ProjectStatus = "Archived"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectInProgress, ProjectCompleted, ProjectArchived, ProjectCancelled:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Access is the level a route requires on a project. Owner implies admin implies member.
type Access int

const (
	AccessMember Access = iota
	AccessAdmin
	AccessOwner
)
