package errors

import "net/http"

var ErrInvalidJSON = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidResetToken = &Exception{
	Message:    "reset token is invalid or has expired",
	StatusCode: http.StatusBadRequest,
}

var ErrSamePassword = &Exception{
	Message:    "new password cannot be the same as the previous password",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidStatus = &Exception{
	Message:    "invalid project status",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidRole = &Exception{
	Message:    "role must be admin or member",
	StatusCode: http.StatusBadRequest,
}
