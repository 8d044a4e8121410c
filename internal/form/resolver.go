// Package form resolves logical field names against inconsistently built
// forms. Markup differs across pages, so a single lookup rule is not enough;
// resolution walks an ordered list of strategies and the first match wins.
package form

import "strings"

// Field is one form control. Any of the identifying attributes may be empty.
type Field struct {
	ID        string
	Name      string
	DataField string
	Class     string
	Value     string
	Text      string
}

// Content returns the field's value, falling back to its text content.
func (f *Field) Content() string {
	if f.Value != "" {
		return f.Value
	}
	return f.Text
}

// Form is a set of fields in document order.
type Form struct {
	Fields []Field
}

// Strategy locates a field for a logical name, or nil when it has no match.
type Strategy func(form *Form, name string) *Field

// ByID matches on the element identifier.
func ByID(form *Form, name string) *Field {
	for i := range form.Fields {
		if form.Fields[i].ID == name {
			return &form.Fields[i]
		}
	}
	return nil
}

// ByName matches on the name attribute.
func ByName(form *Form, name string) *Field {
	for i := range form.Fields {
		if form.Fields[i].Name == name {
			return &form.Fields[i]
		}
	}
	return nil
}

// ByDataField matches on the custom data-field attribute.
func ByDataField(form *Form, name string) *Field {
	for i := range form.Fields {
		if form.Fields[i].DataField == name {
			return &form.Fields[i]
		}
	}
	return nil
}

// ByClass matches the first field carrying the name as one of its classes.
func ByClass(form *Form, name string) *Field {
	for i := range form.Fields {
		for _, class := range strings.Fields(form.Fields[i].Class) {
			if class == name {
				return &form.Fields[i]
			}
		}
	}
	return nil
}

// DefaultStrategies is the standard resolution order.
func DefaultStrategies() []Strategy {
	return []Strategy{ByID, ByName, ByDataField, ByClass}
}

// Resolver resolves logical field names using an injected strategy chain.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a resolver. With no strategies the default chain is
// used.
func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{strategies: strategies}
}

// Resolve returns the current value for a logical field name. The second
// return is false when no strategy matches.
func (r *Resolver) Resolve(form *Form, name string) (string, bool) {
	for _, strategy := range r.strategies {
		if f := strategy(form, name); f != nil {
			return f.Content(), true
		}
	}
	return "", false
}

// ResolveOr returns the resolved value or fallback when the field is absent.
func (r *Resolver) ResolveOr(form *Form, name, fallback string) string {
	if v, ok := r.Resolve(form, name); ok {
		return v
	}
	return fallback
}
