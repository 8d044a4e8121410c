// Package render turns search results into terminal output and routes
// per-result actions.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
	"github.com/pratham-bits/Shiksha-Setu/pkg/utils"
)

// ErrDisplayTarget means the renderer has no destination to write to.
var ErrDisplayTarget = errors.New("display target missing")

// ErrUnknownAction means the action input did not match any command.
var ErrUnknownAction = errors.New("unknown action")

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Actions receives per-result commands dispatched from user input.
type Actions interface {
	ViewDetails(id int64) error
	DownloadSummary(id int64) error
}

// Renderer writes result listings. Dependencies are injected; it holds no
// global state.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render replaces the displayed result set. An empty list renders the
// no-results state instead of a listing; the two are mutually exclusive.
func (r *Renderer) Render(results []models.SearchResult) error {
	if r.out == nil {
		return ErrDisplayTarget
	}
	if len(results) == 0 {
		fmt.Fprintln(r.out, emptyStyle.Render("No documents found. Try different keywords or filters."))
		return nil
	}

	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("%d document(s) found", len(results))))
	fmt.Fprintln(r.out)
	for i, result := range results {
		fmt.Fprintln(r.out, cardStyle.Render(r.card(i+1, result)))
	}
	fmt.Fprintln(r.out, metaStyle.Render(`Actions: "view <n>", "download <n>"`))
	return nil
}

func (r *Renderer) card(position int, result models.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s\n", position, titleStyle.Render(utils.OrDefault(result.Title, "N/A")))
	fmt.Fprintf(&b, "Type: %s | Category: %s\n",
		utils.OrDefault(result.DocumentType, "Unknown Type"),
		utils.OrDefault(result.Category, "N/A"))
	fmt.Fprintf(&b, "Department: %s | Date: %s",
		utils.OrDefault(result.Department, "N/A"),
		utils.OrDefault(result.CreatedDate, "N/A"))
	if result.SimilarityScore > 0 {
		fmt.Fprintf(&b, " | Relevance: %.0f%%", result.SimilarityScore*100)
	}
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(utils.OrDefault(result.Content, "No content available")))
	return b.String()
}

// Dispatch routes one line of user input to exactly one action. "view <n>"
// and a bare number both open details for the nth card; "download <n>" saves
// its summary. Positions are 1-based against the rendered list.
func (r *Renderer) Dispatch(input string, results []models.SearchResult, actions Actions) error {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return ErrUnknownAction
	}

	var verb, arg string
	switch len(fields) {
	case 1:
		verb, arg = "view", fields[0]
	case 2:
		verb, arg = fields[0], fields[1]
	default:
		return ErrUnknownAction
	}

	position, err := strconv.Atoi(arg)
	if err != nil || position < 1 || position > len(results) {
		return fmt.Errorf("%w: no result %q", ErrUnknownAction, arg)
	}
	id := results[position-1].ID

	switch verb {
	case "view":
		return actions.ViewDetails(id)
	case "download":
		return actions.DownloadSummary(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, verb)
	}
}
