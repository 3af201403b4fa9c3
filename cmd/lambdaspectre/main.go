package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/ppiankov/lambdaspectre/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := commands.Execute(version, commit, date); err != nil {
		var exitErr commands.ExitCodeError
		if errors.As(err, &exitErr) {
			slog.Error("Command failed", "error", err)
			os.Exit(exitErr.Code)
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
