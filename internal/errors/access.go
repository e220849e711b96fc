package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid email or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrForbidden = &Exception{
	Message:    "you do not have permission to perform this action",
	StatusCode: http.StatusForbidden,
}

var ErrOwnerImmutable = &Exception{
	Message:    "the project owner cannot be removed or demoted",
	StatusCode: http.StatusForbidden,
}

var ErrNotAssignee = &Exception{
	Message:    "only the assigned member can submit this task",
	StatusCode: http.StatusForbidden,
}
