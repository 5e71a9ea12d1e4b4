package trip

import (
	"fmt"
	"strings"
)

// ValidationError reports required trip fields missing before a step
// transition. It blocks navigation and is always recoverable.
type ValidationError struct {
	Step    int
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d requires: %s", e.Step, strings.Join(e.Missing, ", "))
}
