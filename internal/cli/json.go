package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonOutput is the global --json flag.
var jsonOutput bool

// Response is the standard JSON envelope for all eaglecoolctl output,
// grounded on the teacher's internal/cli/json.go.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
	Meta  *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains response metadata.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess emits a successful JSON response.
func outputSuccess(data interface{}, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Meta: meta})
}

// outputErrorFromErr emits an error JSON response.
func outputErrorFromErr(code string, err error) {
	outputJSON(Response{OK: false, Error: &ErrorInfo{Code: code, Message: err.Error()}})
}

func isJSONOutput() bool { return jsonOutput }

// handleError reports err appropriately for the active output mode: in
// JSON mode it emits a JSON error envelope and swallows the error so
// cobra doesn't print it a second time; otherwise it returns err for
// cobra's own error path.
func handleError(code string, err error) error {
	if jsonOutput {
		outputErrorFromErr(code, err)
		return nil
	}
	return fmt.Errorf("%s", err.Error())
}
