package shared

// Result is the common outcome shape returned by every tool. Agents read
// the status field to decide whether the report or the error message is
// meaningful, so failures surface as data instead of aborting the run.
type Result struct {
	Status       string `json:"status"` // "success" or "error"
	Report       string `json:"report,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Success builds a successful result with the given report.
func Success(report string) Result {
	return Result{Status: "success", Report: report}
}

// Error builds a failed result with the given message.
func Error(message string) Result {
	return Result{Status: "error", ErrorMessage: message}
}
