package referendum

import "testing"

func TestNormalizeDepartmentCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single digit", "5", "05"},
		{"two digits", "12", "12"},
		{"already padded", "01", "01"},
		{"zero", "0", "00"},
		{"corsica", "2A", "2A"},
		{"three digit overseas", "971", "971"},
		{"abroad", "ZZ", "ZZ"},
		{"surrounding whitespace", " 7 ", "07"},
		{"empty", "", "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDepartmentCode(tt.input); got != tt.want {
				t.Errorf("NormalizeDepartmentCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsOverseasCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ZZ", true},
		{"ZA", true},
		{"2Z", true},
		{"01", false},
		{"2A", false},
		{"971", false}, // numeric overseas codes are not Z-marked; the join drops them
	}

	for _, tt := range tests {
		if got := IsOverseasCode(tt.code); got != tt.want {
			t.Errorf("IsOverseasCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
