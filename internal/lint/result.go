package lint

// Status classifies a single rule outcome.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
	StatusInfo Status = "INFO"

	// StatusInternalError marks a rule implementation defect: the rule
	// returned an error or panicked instead of reporting an outcome. It is
	// synthesized by the engine and never constructed by rule code.
	StatusInternalError Status = "INTERNAL_ERROR"
)

// Result is the uniform outcome value every rule produces.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func Pass() Result {
	return Result{Status: StatusPass}
}

func PassWith(message string) Result {
	return Result{Status: StatusPass, Message: message}
}

func Fail(message string) Result {
	return Result{Status: StatusFail, Message: message}
}

func Warn(message string) Result {
	return Result{Status: StatusWarn, Message: message}
}

func Info(message string) Result {
	return Result{Status: StatusInfo, Message: message}
}

func internalError(message string) Result {
	if message == "" {
		message = "rule failed without a message"
	}
	return Result{Status: StatusInternalError, Message: message}
}

// NotPass returns the results that carry something worth reporting.
// Applying it to its own output returns the same slice contents.
func NotPass(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Status != StatusPass {
			out = append(out, r)
		}
	}
	return out
}
