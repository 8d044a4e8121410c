package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation and well-known HTTP outcomes.
var (
	// ErrEmptyQuery means the query was blank after trimming.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrQueryTooShort means the trimmed query is under two characters.
	ErrQueryTooShort = errors.New("query too short")
	// ErrAuthenticationRequired maps HTTP 401.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrServiceUnavailable maps HTTP 404 on the search endpoint.
	ErrServiceUnavailable = errors.New("search service unavailable")
	// ErrNetwork means the request never produced a response.
	ErrNetwork = errors.New("network error")
	// ErrSuperseded means a newer search canceled this one.
	ErrSuperseded = errors.New("search superseded by a newer request")
)

// HTTPError is a non-2xx response outside the well-known statuses.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned HTTP %d", e.Status)
}

// SearchFailedError is a 2xx search response with success=false.
type SearchFailedError struct {
	Reason string
}

func (e *SearchFailedError) Error() string {
	return "search failed: " + e.Reason
}

// APIError is a 2xx document response with success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "api error: " + e.Message
}

// UserMessage converts any client error into the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Please enter a search query"
	case errors.Is(err, ErrQueryTooShort):
		return "Please enter at least 2 characters for search"
	case errors.Is(err, ErrAuthenticationRequired):
		return "Authentication required. Please log in to search documents."
	case errors.Is(err, ErrServiceUnavailable):
		return "Search service is currently unavailable. Please try again later."
	case errors.Is(err, ErrNetwork):
		return "Network error. Please check your connection and try again."
	case errors.Is(err, ErrSuperseded):
		return "Search was replaced by a newer request."
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("Search failed with status %d. Please try again.", httpErr.Status)
	}
	var searchErr *SearchFailedError
	if errors.As(err, &searchErr) {
		if searchErr.Reason != "" {
			return searchErr.Reason
		}
		return "Search failed. Please try again."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Request failed. Please try again."
	}
	return err.Error()
}
