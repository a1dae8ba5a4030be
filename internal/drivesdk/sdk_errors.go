package drivesdk

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/imroc/req/v3"
)

// APIError is the Drive API error envelope.
type APIError struct {
	StatusCode int `json:"-"`
	Detail     struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("drive api error: %d %s", e.Detail.Code, e.Detail.Message)
}

// IsNotFound reports whether err is a Drive 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// handleAPIError folds transport and API-level failures into one error path.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s: %w", operation, requestErr)
	}

	// got a response, but the api returned an error
	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok {
			apiErr.StatusCode = resp.GetStatusCode()
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("api error: %s: %s", operation, resp.String())
	}

	return nil
}
