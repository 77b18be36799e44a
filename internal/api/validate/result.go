package validate

const MsgFixErrors = "Please fix the following errors:"

// Result is the envelope returned for every public form submission.
type Result struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Invalid wraps field violations.
func Invalid(errs Errs) Result {
	return Result{Success: false, Message: MsgFixErrors, Errors: errs.Messages()}
}

// Failed reports a backend failure with a single fallback message.
func Failed(message, detail string) Result {
	return Result{Success: false, Message: message, Error: detail}
}

func OK(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}
