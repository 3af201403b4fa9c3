package commands

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/lambdaspectre/internal/dataset"
	"github.com/ppiankov/lambdaspectre/internal/report"
)

// ExitCodeError carries a specific process exit code up to main.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e ExitCodeError) Error() string { return e.Err.Error() }

func (e ExitCodeError) Unwrap() error { return e.Err }

// loadRecords loads and coerces the dataset. An absent file halts the run
// with exit code 2 before any computation.
func loadRecords(path string) ([]dataset.Record, error) {
	table, err := dataset.Load(path)
	if err != nil {
		var missing *dataset.MissingFileError
		if errors.As(err, &missing) {
			return nil, ExitCodeError{Code: 2, Err: err}
		}
		return nil, err
	}
	return dataset.Coerce(table), nil
}

// enhanceError wraps an error with context and suggestions for common issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "NoCredentialProviders"):
		hint = "Configure AWS credentials: set AWS_PROFILE, AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, or run 'aws configure'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "UnauthorizedAccess"):
		hint = "Insufficient permissions. Apply the IAM policy from 'lambdaspectre init' to your role/user"
	case strings.Contains(msg, "Throttling"):
		hint = "AWS API rate limit hit. Retry with fewer regions or increase timeout"
	case strings.Contains(msg, "not found"):
		hint = "Run 'lambdaspectre collect' to gather the dataset, or pass --file"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// computeTargetHash generates a SHA256 hash identifying the dataset file.
func computeTargetHash(path string) string {
	h := sha256.Sum256([]byte("file:" + path))
	return fmt.Sprintf("sha256:%x", h)
}

// openOutput returns the destination writer for command output: stdout, or a
// freshly created file. The closer is non-nil only for a file; the caller
// closes it after writing.
func openOutput(outputFile string) (io.Writer, io.Closer, error) {
	if outputFile == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f, nil
}

func selectReporter(format string, w io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}
