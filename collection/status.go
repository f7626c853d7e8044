package collection

import "fmt"

// Level classifies a Status for display.
type Level int

// Status levels.
const (
	Success Level = iota
	Info
	Failure
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Info:
		return "info"
	default:
		return "error"
	}
}

// Status is a user-facing notification about a collection event.
type Status struct {
	Level   Level
	Message string
}

func (s Status) String() string { return "[" + s.Level.String() + "] " + s.Message }

// Notifier receives statuses as they are produced.
type Notifier func(Status)

func added(name string) Status   { return Status{Level: Success, Message: fmt.Sprintf("Signal %q added", name)} }
func removed(name string) Status { return Status{Level: Info, Message: fmt.Sprintf("Signal %q removed", name)} }
func updated(name string) Status { return Status{Level: Success, Message: fmt.Sprintf("Signal %q updated", name)} }

// Saved reports a successful save of n signals.
func Saved(n int) Status { return Status{Level: Success, Message: fmt.Sprintf("%d signals saved", n)} }

// Loaded reports a successful load of n signals.
func Loaded(n int) Status { return Status{Level: Success, Message: fmt.Sprintf("%d signals loaded", n)} }

// Failed reports an error in the form shown to users.
func Failed(action string, err error) Status {
	return Status{Level: Failure, Message: fmt.Sprintf("%s failed: %v", action, err)}
}
