package form

import "testing"

func TestResolveFallbackOrder(t *testing.T) {
	form := &Form{Fields: []Field{
		{Name: "query", Value: "by-name"},
		{DataField: "query", Value: "by-data"},
		{Class: "query other", Value: "by-class"},
		{ID: "query", Value: "by-id"},
	}}
	r := NewResolver()

	// ID wins even though it appears last in document order.
	if v, ok := r.Resolve(form, "query"); !ok || v != "by-id" {
		t.Errorf("Resolve = %q/%v, want by-id", v, ok)
	}
}

func TestResolveEachStrategy(t *testing.T) {
	r := NewResolver()
	tests := []struct {
		name string
		form *Form
		want string
	}{
		{"id", &Form{Fields: []Field{{ID: "category", Value: "v1"}}}, "v1"},
		{"name", &Form{Fields: []Field{{Name: "category", Value: "v2"}}}, "v2"},
		{"data field", &Form{Fields: []Field{{DataField: "category", Value: "v3"}}}, "v3"},
		{"class", &Form{Fields: []Field{{Class: "big category", Value: "v4"}}}, "v4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := r.Resolve(tt.form, "category")
			if !ok || v != tt.want {
				t.Errorf("Resolve = %q/%v, want %q", v, ok, tt.want)
			}
		})
	}
}

func TestResolveAbsent(t *testing.T) {
	form := &Form{Fields: []Field{{ID: "other", Value: "x"}}}
	r := NewResolver()

	if _, ok := r.Resolve(form, "query"); ok {
		t.Error("Resolve matched a missing field")
	}
	if got := r.ResolveOr(form, "query", "fallback"); got != "fallback" {
		t.Errorf("ResolveOr = %q, want fallback", got)
	}
}

func TestResolveValuePreferredOverText(t *testing.T) {
	r := NewResolver()

	form := &Form{Fields: []Field{{ID: "query", Value: "typed", Text: "label"}}}
	if v, _ := r.Resolve(form, "query"); v != "typed" {
		t.Errorf("Resolve = %q, want typed", v)
	}

	form = &Form{Fields: []Field{{ID: "query", Text: "label"}}}
	if v, _ := r.Resolve(form, "query"); v != "label" {
		t.Errorf("Resolve = %q, want label (text fallback)", v)
	}
}

func TestResolveCustomStrategyOrder(t *testing.T) {
	form := &Form{Fields: []Field{
		{ID: "query", Value: "by-id"},
		{Class: "query", Value: "by-class"},
	}}
	r := NewResolver(ByClass, ByID)

	if v, _ := r.Resolve(form, "query"); v != "by-class" {
		t.Errorf("Resolve = %q, want by-class with inverted order", v)
	}
}

func TestResolveFirstClassMatchWins(t *testing.T) {
	form := &Form{Fields: []Field{
		{Class: "query", Value: "first"},
		{Class: "query", Value: "second"},
	}}
	r := NewResolver()

	if v, _ := r.Resolve(form, "query"); v != "first" {
		t.Errorf("Resolve = %q, want first matching field", v)
	}
}
