package contact

// Status is the visible state of the contact form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is the line shown under the submit button.
func (s Status) Message() string {
	switch s {
	case StatusSuccess:
		return SuccessMessage
	case StatusError:
		return FailureMessage
	default:
		return ""
	}
}

// Form tracks one in-flight submission at a time.
type Form struct {
	status Status
	seq    uint64
}

func (f *Form) Status() Status { return f.status }

// Begin moves the form into submitting and returns a token for Finish. ok is
// false while a submission is already running.
func (f *Form) Begin() (token uint64, ok bool) {
	if f.status == StatusSubmitting {
		return 0, false
	}
	f.seq++
	f.status = StatusSubmitting
	return f.seq, true
}

// Finish records the outcome of the submission identified by token. Stale
// tokens are ignored and reported as false. A successful submission tells the
// caller to clear its inputs.
func (f *Form) Finish(token uint64, err error) bool {
	if token != f.seq || f.status != StatusSubmitting {
		return false
	}
	if err != nil {
		f.status = StatusError
	} else {
		f.status = StatusSuccess
	}
	return true
}

// Reset returns the form to idle and drops any in-flight submission.
func (f *Form) Reset() {
	f.seq++
	f.status = StatusIdle
}
