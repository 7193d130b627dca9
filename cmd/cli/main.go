// Command review-cli sends a source file to the configured model and prints
// the code review.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("review failed", "command", rootCmd.Name(), "error", err)
		os.Exit(1)
	}
}
