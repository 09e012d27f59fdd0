package user

import (
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pass, err := GeneratePassword(12)
		if err != nil {
			t.Fatalf("GeneratePassword failed: %v", err)
		}
		if len(pass) != 12 {
			t.Fatalf("password length = %d, want 12", len(pass))
		}
		if seen[pass] {
			t.Fatalf("duplicate password generated: %q", pass)
		}
		seen[pass] = true
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "janedoe"},
		{"jane.doe+conf", "janedoeconf"},
		{"O'Brien-2026", "obrien2026"},
		{"___", ""},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
