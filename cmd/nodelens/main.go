package main

import (
	"os"

	nlerrors "nodelens/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Debug("Command failed", "code", nlerrors.CodeOf(err))
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
