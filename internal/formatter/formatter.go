// package formatter provides functions to export transfer run reports to various formats (JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tracklift/tracklift/internal/shared"
	"github.com/tracklift/tracklift/internal/tasks"
)

// ReportToJSON converts a TransferRunResult to pretty-printed JSON
func ReportToJSON(result *tasks.TransferRunResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// ReportToMarkdown converts a TransferRunResult to Markdown format
func ReportToMarkdown(result *tasks.TransferRunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Transfer Report\n\n")
	buf.WriteString(fmt.Sprintf("**Playlist**: %s\n", result.PlaylistID))
	buf.WriteString(fmt.Sprintf("**Added**: %d\n", len(result.Added)))
	buf.WriteString(fmt.Sprintf("**Skipped**: %d\n", len(result.Skipped)))
	buf.WriteString(fmt.Sprintf("**Total processed**: %d\n", result.TotalProcessed))
	if result.Resumed {
		buf.WriteString("**Resumed**: yes\n")
	}
	if result.QuotaStopped {
		buf.WriteString(fmt.Sprintf("**Stopped on quota**: yes (%d tracks remaining)\n", result.RemainingCount))
	}
	buf.WriteString("\n")

	if len(result.Added) > 0 {
		buf.WriteString("## Added\n\n")
		for i, name := range result.Added {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
		}
		buf.WriteString("\n")
	}

	if len(result.Skipped) > 0 {
		buf.WriteString("## Skipped\n\n")
		for _, skip := range result.Skipped {
			buf.WriteString(fmt.Sprintf("- %s: %s\n", skip.Track.Name, skip.Reason))
		}
	}

	return buf.Bytes(), nil
}

// ReportToText converts a TransferRunResult to plain text format
func ReportToText(result *tasks.TransferRunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.PlaylistID))
	buf.WriteString(fmt.Sprintf("Added: %d\n", len(result.Added)))
	buf.WriteString(fmt.Sprintf("Skipped: %d\n", len(result.Skipped)))
	if result.QuotaStopped {
		buf.WriteString(fmt.Sprintf("Stopped on quota with %d tracks remaining\n", result.RemainingCount))
	}
	buf.WriteString("\n")

	for i, name := range result.Added {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}

	for _, skip := range result.Skipped {
		buf.WriteString(fmt.Sprintf("skipped %s (%s)\n", skip.Track.Name, skip.Reason))
	}

	return buf.Bytes(), nil
}

// WriteReport writes a transfer report to disk in the requested format.
//
// Supported formats are "json", "markdown", and "text". Defaults to
// {playlistID}_report.{ext} when filepath is empty.
func WriteReport(result *tasks.TransferRunResult, format, filepath string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "json", "":
		data, err = ReportToJSON(result)
		ext = "json"
	case "markdown", "md":
		data, err = ReportToMarkdown(result)
		ext = "md"
	case "text", "txt":
		data, err = ReportToText(result)
		ext = "txt"
	default:
		return "", fmt.Errorf("%w: unsupported report format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if filepath == "" {
		filepath = fmt.Sprintf("%s_report.%s", result.PlaylistID, ext)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filepath, nil
}
