package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "record was modified concurrently, reload and retry",
	StatusCode: http.StatusConflict,
}
