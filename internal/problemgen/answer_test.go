package problemgen

import (
	"errors"
	"testing"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"57", 57, false},
		{"  57 ", 57, false},
		{"+57", 57, false},
		{"-3", -3, false},
		{"007", 7, false},
		{"", 0, true},
		{"   ", 0, true},
		{"abc", 0, true},
		{"5.0", 0, true},
		{"1e2", 0, true},
		{"99999999999999999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAnswer(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNotANumber) {
					t.Fatalf("ParseAnswer(%q) err = %v, want ErrNotANumber", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnswer(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAnswer(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
