package errors

import "net/http"

var ErrAlreadyMember = &Exception{
	Message:    "user is already a member of this project",
	StatusCode: http.StatusConflict,
}

var ErrEmailTaken = &Exception{
	Message:    "user with that email already exists",
	StatusCode: http.StatusConflict,
}

var ErrInvalidTransition = &Exception{
	Message:    "task cannot move to that status from its current status",
	StatusCode: http.StatusConflict,
}
