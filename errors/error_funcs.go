package errors

import (
	"os"

	log "github.com/charmbracelet/log"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// CheckErrorPrintAndExit logs the error and exits with exit code 1.
// A nil error is a no-op.
func CheckErrorPrintAndExit(err error) {
	if err == nil {
		return
	}
	log.Error(err)
	OsExit(1)
}
