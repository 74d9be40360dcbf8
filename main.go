package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"

	"github.com/cfmerge/cfmerge/cmd"
	errUtils "github.com/cfmerge/cfmerge/errors"
)

func main() {
	// Exit with the correct POSIX code (128 + signal number) on interruption.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run())
}

// run executes the CLI and returns the process exit code.
func run() int {
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}
