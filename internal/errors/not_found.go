package errors

import "net/http"

var ErrUserNotFound = &Exception{
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}

var ErrProjectNotFound = &Exception{
	Message:    "project not found",
	StatusCode: http.StatusNotFound,
}

var ErrMemberNotFound = &Exception{
	Message:    "user is not a member of this project",
	StatusCode: http.StatusNotFound,
}

var ErrInviteNotFound = &Exception{
	Message:    "invite link is invalid",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrCommentNotFound = &Exception{
	Message:    "comment not found",
	StatusCode: http.StatusNotFound,
}

var ErrReminderNotFound = &Exception{
	Message:    "reminder not found",
	StatusCode: http.StatusNotFound,
}
