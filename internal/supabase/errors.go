package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// codeSingleRow is PostgREST's code for a single-object response whose
// result did not contain exactly one row.
const codeSingleRow = "PGRST116"

// zeroRows matches PostgREST's "contains 0 rows" detail without matching
// "10 rows".
var zeroRows = regexp.MustCompile(`(^|\D)0 rows`)

// APIError is an error response from PostgREST or the gateway in front of it.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return fmt.Sprintf("supabase: %d %s", e.Status, msg)
}

// Is lets callers branch on single-row failures with errors.Is while the
// error itself stays the one the service returned.
func (e *APIError) Is(target error) bool {
	if e.Code != codeSingleRow {
		return false
	}
	switch target {
	case types.ErrNotFound:
		return zeroRows.MatchString(e.Details)
	case types.ErrMultipleRows:
		return !zeroRows.MatchString(e.Details)
	}
	return false
}

// decodeAPIError reads an error response. Bodies that are not PostgREST
// error objects become the message verbatim.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr.Message = fmt.Sprintf("reading error body: %v", err)
		return apiErr
	}
	if json.Unmarshal(body, apiErr) != nil || (apiErr.Message == "" && apiErr.Code == "") {
		apiErr.Code = ""
		apiErr.Message = strings.TrimSpace(string(body))
		apiErr.Details = ""
		apiErr.Hint = ""
	}
	return apiErr
}
