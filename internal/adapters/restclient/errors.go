package restclient

import (
	"fmt"
	"net/http"

	"github.com/coopdesk/memberdesk/internal/ports/out/memberstore"
)

// APIError is a non-2xx answer from the member store.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Is maps status codes onto the memberstore sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case memberstore.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case memberstore.ErrRejected:
		switch e.StatusCode {
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			return true
		}
	}
	return false
}
