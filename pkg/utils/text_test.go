package utils

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"shorter than max", "abc", 10, "abc"},
		{"exactly max", "abcde", 5, "abcde"},
		{"truncated", "abcdefgh", 5, "abcde..."},
		{"zero max", "abc", 0, "abc"},
		{"cut inside multibyte rune", "शिक्षा", 4, "श..."},
		{"cut on rune boundary", "शिक्षा", 6, "शि..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault("", "N/A"); got != "N/A" {
		t.Errorf("OrDefault empty = %q", got)
	}
	if got := OrDefault("value", "N/A"); got != "value" {
		t.Errorf("OrDefault set = %q", got)
	}
}
