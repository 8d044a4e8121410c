package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
	"github.com/pratham-bits/Shiksha-Setu/pkg/utils"
)

const summaryTimeFormat = "2006-01-02 15:04:05"

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// BuildSummary renders a document into the downloadable plain-text summary.
// Missing top-level fields render as "N/A"; missing content renders as
// "No content available".
func BuildSummary(doc *models.Document) string {
	return buildSummary(doc, time.Now())
}

func buildSummary(doc *models.Document, now time.Time) string {
	var b strings.Builder
	b.WriteString("ShikshaSetu Document Summary\n")
	b.WriteString("============================\n\n")
	fmt.Fprintf(&b, "Title: %s\n", utils.OrDefault(doc.Title, "N/A"))
	fmt.Fprintf(&b, "Document Type: %s\n", utils.OrDefault(doc.DocumentType, "N/A"))
	fmt.Fprintf(&b, "Category: %s\n", utils.OrDefault(doc.Category, "N/A"))
	fmt.Fprintf(&b, "Department: %s\n", utils.OrDefault(doc.Department, "N/A"))
	fmt.Fprintf(&b, "Created Date: %s\n", utils.OrDefault(doc.CreatedDate, "N/A"))
	b.WriteString("\nContent:\n")
	b.WriteString(utils.OrDefault(doc.Content, "No content available"))
	b.WriteString("\n")
	if doc.Keywords != "" {
		fmt.Fprintf(&b, "\nKeywords: %s\n", doc.Keywords)
	}
	if doc.DocumentURL != "" {
		fmt.Fprintf(&b, "\nDocument URL: %s\n", doc.DocumentURL)
	}
	b.WriteString("\n----------------------------\n")
	b.WriteString("Retrieved from ShikshaSetu Education Policy Search\n")
	fmt.Fprintf(&b, "Generated on: %s\n", now.Format(summaryTimeFormat))
	return b.String()
}

// SanitizeFilename collapses every non-alphanumeric run into a single
// underscore. A title that sanitizes to nothing falls back to "document".
func SanitizeFilename(title string) string {
	s := nonAlphanumeric.ReplaceAllString(title, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "document"
	}
	return s
}

// SummaryFilename builds the download filename for a document title.
func SummaryFilename(title string) string {
	return fmt.Sprintf("ShikshaSetu_%s_summary.txt", SanitizeFilename(title))
}

// SaveSummary writes the summary text to dir under the standard filename and
// returns the written path.
func SaveSummary(dir, title, text string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	path := filepath.Join(dir, SummaryFilename(title))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

// Progress reflects a long-running document action, disabling the trigger
// while the fetch runs. Begin's return value restores the original state and
// runs exactly once on every outcome.
type Progress interface {
	Begin(label string) (end func())
}

type nopProgress struct{}

func (nopProgress) Begin(string) func() { return func() {} }

// DownloadSummary fetches a document by ID, builds its summary, and saves it
// to dir. The progress control is restored on every path out.
func (c *Client) DownloadSummary(ctx context.Context, id int64, dir string, progress Progress) (string, error) {
	if progress == nil {
		progress = nopProgress{}
	}
	end := progress.Begin("Downloading...")
	defer end()

	doc, err := c.FetchDocument(ctx, id)
	if err != nil {
		return "", err
	}
	path, err := SaveSummary(dir, doc.Title, BuildSummary(doc))
	if err != nil {
		return "", err
	}
	c.logger.Info("summary downloaded", zap.Int64("id", id), zap.String("path", path))
	return path, nil
}
