package talentgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericErrorMessage is shown when the server gave no usable detail.
const GenericErrorMessage = "Something went wrong. Please try again."

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

type errorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Detail: parseDetail(body)}
}

// parseDetail understands {"detail": "..."}, {"detail": [{"msg": "..."}]},
// {"message": "..."} and {"error": "..."}.
func parseDetail(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}

	if len(resp.Detail) > 0 {
		var s string
		if err := json.Unmarshal(resp.Detail, &s); err == nil {
			return s
		}

		var items []struct {
			Msg string        `json:"msg"`
			Loc []interface{} `json:"loc"`
		}
		if err := json.Unmarshal(resp.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}

	if resp.Message != "" {
		return resp.Message
	}
	return resp.Error
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// UserMessage is the text to show for a failed call: the server detail
// verbatim for client errors, a generic message for everything else.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return GenericErrorMessage
}
