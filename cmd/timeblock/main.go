// Command timeblock scores time-block schedules from the command line and
// serves the scoring engine over HTTP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/okian/timeblock/internal/domain/model"
)

// Exit codes for different failure modes.
const (
	ExitSuccess      = 0 // command completed
	ExitInvalidInput = 1 // the schedule sample was rejected
	ExitError        = 2 // configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, model.ErrInvalidSample):
		return ExitInvalidInput
	default:
		return ExitError
	}
}
