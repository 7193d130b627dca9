package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/markdown"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/report"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/wire"
)

var (
	langFlag  string
	exportDir string
	rawOutput bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

// newRequestor builds the review requestor; tests replace it.
var newRequestor = func(ctx context.Context, cfg *config.Config) (core.Requestor, func(), error) {
	return wire.InitializeService(ctx, cfg)
}

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Review a source file, or stdin when the argument is -",
	Long: `Review a single source file with the configured AI model.

The language is taken from the file extension unless --language is given.
Use - to read pasted code from stdin.

Examples:
  review-cli review main.go
  cat script.py | review-cli review - --language python
  review-cli review app.ts --export ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&langFlag, "language", "l", "", "Override the language tag")
	reviewCmd.Flags().StringVarP(&exportDir, "export", "e", "", "Write a text report into this directory")
	reviewCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the review without markdown rendering")
	rootCmd.AddCommand(reviewCmd)
}

// readSubmission loads the snippet and resolves its language.
func readSubmission(arg, langOverride string, stdin io.Reader) (core.Session, error) {
	s := core.NewSession()
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return s, fmt.Errorf("failed to read stdin: %w", err)
		}
		s = core.Reduce(s, core.SourceEdited{Text: string(data)})
	} else {
		data, err := os.ReadFile(arg)
		if err != nil {
			return s, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		s = core.Reduce(s, core.FileLoaded{Name: filepath.Base(arg), Content: string(data)})
	}

	if langOverride != "" {
		tag, err := language.Parse(langOverride)
		if err != nil {
			return s, err
		}
		s = core.Reduce(s, core.LanguageSelected{Tag: tag})
	}
	return s, nil
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	out := cmd.OutOrStdout()

	s, err := readSubmission(args[0], langFlag, cmd.InOrStdin())
	if err != nil {
		return err
	}
	s = core.Reduce(s, core.SubmitRequested{})
	if !s.Busy {
		return errors.New(s.ErrorMessage)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	requestor, cleanup, err := newRequestor(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	name := s.FileName
	if name == "" {
		name = "stdin"
	}
	titleColor.Fprintf(out, "Reviewing %s (%s) with %s\n", name, s.Language.Label(), cfg.AI.LLMProvider)

	start := time.Now()
	review, err := requestor.Submit(ctx, s.Submission())
	if err != nil {
		s = core.Reduce(s, core.ReviewFailed{Generation: s.Generation, Message: core.UserMessage(err)})
		errorColor.Fprintln(out, s.ErrorMessage)
		return fmt.Errorf("review failed: %w", err)
	}
	s = core.Reduce(s, core.ReviewSucceeded{Generation: s.Generation, Review: review})
	dimColor.Fprintf(out, "Done in %s\n\n", time.Since(start).Round(time.Millisecond))

	printReview(out, s.Review, rawOutput)

	if exportDir != "" {
		path, err := report.Write(exportDir, report.FromSession(s, time.Now()))
		if err != nil {
			return err
		}
		successColor.Fprintf(out, "\nReport saved to %s\n", path)
	}
	return nil
}

func printReview(out io.Writer, review string, raw bool) {
	if raw {
		fmt.Fprintln(out, review)
		return
	}
	separator := strings.Repeat("=", 60)
	titleColor.Fprintln(out, separator)
	titleColor.Fprintln(out, "REVIEW")
	titleColor.Fprintln(out, separator)
	fmt.Fprintln(out, markdown.NewRenderer(terminalWidth(), "").Render(review))
}

func terminalWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		var w int
		if _, err := fmt.Sscanf(cols, "%d", &w); err == nil {
			return w
		}
	}
	return 100
}
