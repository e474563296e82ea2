package id

import (
	"strings"
	"testing"
)

// FuzzGenerate tests the Generate function
func FuzzGenerate(f *testing.F) {
	lengths := []int{0, 1, 2, 5, 10, 12, 16, 24, 50, 100}
	for _, l := range lengths {
		f.Add(l)
	}

	f.Fuzz(func(t *testing.T, length int) {
		result, err := Generate(length)
		if err != nil {
			t.Errorf("Generate(%d) returned error: %v", length, err)
			return
		}

		expectedLen := length
		if expectedLen <= 0 {
			expectedLen = DefaultLength
		}

		if len(result) != expectedLen {
			t.Errorf("Generate(%d) returned string of length %d, expected %d", length, len(result), expectedLen)
		}

		for _, c := range result {
			if !strings.ContainsRune(alphabet, c) {
				t.Errorf("Generate(%d) returned invalid character %q", length, c)
			}
		}
	})
}

// TestGenerateUniqueness tests that generated IDs are unique
func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	iterations := 10000

	for i := 0; i < iterations; i++ {
		id, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		if seen[id] {
			t.Errorf("Generate produced duplicate ID: %s", id)
		}
		seen[id] = true
	}
}

func TestTokenLengths(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}
	if len(token) != SessionTokenLength {
		t.Errorf("session token length %d, expected %d", len(token), SessionTokenLength)
	}

	etag, err := NewTableEtag()
	if err != nil {
		t.Fatalf("NewTableEtag failed: %v", err)
	}
	if len(etag) != TableEtagLength {
		t.Errorf("table etag length %d, expected %d", len(etag), TableEtagLength)
	}
}
