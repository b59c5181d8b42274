package errors

import (
	"testing"
)

func TestValidateGraphID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"zero", "0", 0, false},
		{"simple", "42", 42, false},
		{"leading zeros", "007", 7, false},

		{"empty", "", 0, true},
		{"negative", "-1", 0, true},
		{"plus sign", "+1", 0, true},
		{"letters", "abc", 0, true},
		{"path traversal", "../1", 0, true},
		{"space", "1 2", 0, true},
		{"null byte", "1\x00", 0, true},
		{"too long", "1234567890123456789", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateGraphID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGraphID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidInput) {
					t.Errorf("ValidateGraphID(%q) returned wrong error code: %v", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ValidateGraphID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://localhost:8080", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"newline", "http://example.com\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidGraph,
		ErrCodeCycleDetected,
		ErrCodeInvalidInput,
		ErrCodeNotFound,
		ErrCodeUnavailable,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
