package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

func result(id int64, title string) models.SearchResult {
	return models.SearchResult{Document: models.Document{ID: id, Title: title}}
}

func TestRenderHeader(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	results := []models.SearchResult{result(1, "NEP 2020")}
	if err := r.Render(results); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "1 document(s) found") {
		t.Errorf("output missing count header: %s", buf.String())
	}
}

func TestRenderNoResultsState(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	if err := r.Render(nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No documents found") {
		t.Error("missing no-results message")
	}
	if strings.Contains(out, "document(s) found") {
		t.Error("no-results state must not show the count header")
	}
}

func TestRenderNonEmptyHidesNoResultsState(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	if err := r.Render([]models.SearchResult{result(1, "NEP 2020")}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "No documents found") {
		t.Error("listing must not show the no-results message")
	}
}

func TestRenderPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	results := []models.SearchResult{{Document: models.Document{ID: 1, Title: "Bare Doc"}}}
	if err := r.Render(results); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Unknown Type") {
		t.Error("missing type defaults to Unknown Type")
	}
	if !strings.Contains(out, "Department: N/A") {
		t.Error("missing department defaults to N/A")
	}
}

func TestRenderMissingTarget(t *testing.T) {
	r := NewRenderer(nil)
	if err := r.Render(nil); !errors.Is(err, ErrDisplayTarget) {
		t.Errorf("err = %v, want ErrDisplayTarget", err)
	}
}

// recordingActions records which action fired.
type recordingActions struct {
	viewed     []int64
	downloaded []int64
}

func (a *recordingActions) ViewDetails(id int64) error {
	a.viewed = append(a.viewed, id)
	return nil
}

func (a *recordingActions) DownloadSummary(id int64) error {
	a.downloaded = append(a.downloaded, id)
	return nil
}

func TestDispatch(t *testing.T) {
	results := []models.SearchResult{result(10, "A"), result(20, "B")}

	tests := []struct {
		name           string
		input          string
		wantViewed     []int64
		wantDownloaded []int64
		wantErr        bool
	}{
		{"view by number", "view 2", []int64{20}, nil, false},
		{"bare number views", "1", []int64{10}, nil, false},
		{"download", "download 1", nil, []int64{10}, false},
		{"mixed case", "View 1", []int64{10}, nil, false},
		{"out of range", "view 3", nil, nil, true},
		{"unknown verb", "open 1", nil, nil, true},
		{"empty input", "   ", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &recordingActions{}
			r := NewRenderer(&bytes.Buffer{})
			err := r.Dispatch(tt.input, results, actions)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAction) {
					t.Errorf("err = %v, want ErrUnknownAction", err)
				}
			} else if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if len(actions.viewed) != len(tt.wantViewed) {
				t.Fatalf("viewed = %v, want %v", actions.viewed, tt.wantViewed)
			}
			for i, id := range tt.wantViewed {
				if actions.viewed[i] != id {
					t.Errorf("viewed[%d] = %d, want %d", i, actions.viewed[i], id)
				}
			}
			if len(actions.downloaded) != len(tt.wantDownloaded) {
				t.Fatalf("downloaded = %v, want %v", actions.downloaded, tt.wantDownloaded)
			}
		})
	}
}

func TestDispatchFiresSingleAction(t *testing.T) {
	results := []models.SearchResult{result(10, "A")}
	actions := &recordingActions{}
	r := NewRenderer(&bytes.Buffer{})

	if err := r.Dispatch("download 1", results, actions); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if total := len(actions.viewed) + len(actions.downloaded); total != 1 {
		t.Errorf("dispatched %d actions, want exactly 1", total)
	}
	if len(actions.downloaded) != 1 || actions.downloaded[0] != 10 {
		t.Errorf("downloaded = %v, want [10]", actions.downloaded)
	}
}
