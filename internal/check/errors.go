package check

import "fmt"

// ViolationError is returned when more violations were found than allowed.
type ViolationError struct {
	Count int
	Max   int
}

func (e *ViolationError) Error() string {
	return violationMessage(e.Count, e.Max)
}

// violationMessage is the summary line of a check.
func violationMessage(count, allowed int) string {
	msg := fmt.Sprintf("You have %d Checkstyle violation%s.", count, plural(count != 1))
	if allowed > 0 {
		msg += fmt.Sprintf(" The maximum number of allowed violations is %d.", allowed)
	}
	return msg
}

func plural(many bool) string {
	if many {
		return "s"
	}
	return ""
}
