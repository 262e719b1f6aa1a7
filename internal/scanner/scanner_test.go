package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btraven00/maskay/pkg/extract"
)

func TestScanText(t *testing.T) {
	s := New(extract.New(), true)

	result := s.ScanText("inline", "see example.com and www.example.com, plus other.org.")

	if result.Source != "inline" {
		t.Errorf("Source = %q, want %q", result.Source, "inline")
	}

	if result.Summary.TotalMatches != 3 {
		t.Fatalf("TotalMatches = %d, want 3", result.Summary.TotalMatches)
	}

	if result.Summary.UniqueMatches != 3 {
		t.Errorf("UniqueMatches = %d, want 3", result.Summary.UniqueMatches)
	}

	// www.example.com and example.com group under the same registrable
	// domain.
	if got := result.Summary.ByDomain["example.com"]; got != 2 {
		t.Errorf("ByDomain[example.com] = %d, want 2", got)
	}

	if got := result.Summary.ByDomain["other.org"]; got != 1 {
		t.Errorf("ByDomain[other.org] = %d, want 1", got)
	}
}

func TestScanTextWithoutDomainStats(t *testing.T) {
	s := New(extract.New(), false)

	result := s.ScanText("inline", "example.com")

	if result.Summary.ByDomain != nil {
		t.Errorf("expected no domain histogram, got %v", result.Summary.ByDomain)
	}
}

func TestScanTextUniqueCounting(t *testing.T) {
	s := New(extract.New(), false)

	result := s.ScanText("inline", "a.com and a.com and https://a.com/")

	if result.Summary.TotalMatches != 3 {
		t.Fatalf("TotalMatches = %d, want 3", result.Summary.TotalMatches)
	}

	if result.Summary.UniqueMatches != 1 {
		t.Errorf("UniqueMatches = %d, want 1", result.Summary.UniqueMatches)
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		normalized string
		expected   string
	}{
		{"https://www.example.com/", "example.com"},
		{"https://api.staging.example.co.uk/v1", "example.co.uk"},
		{"https://localhost:3000/app", "localhost"},
	}

	for _, tt := range tests {
		if got := registrableDomain(tt.normalized); got != tt.expected {
			t.Errorf("registrableDomain(%q) = %q, want %q", tt.normalized, got, tt.expected)
		}
	}
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	if err := os.WriteFile(path, []byte("links: example.com and http://b.org/x."), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(extract.New(), false)

	result, err := s.ScanFile(path)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}

	if result.Summary.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", result.Summary.TotalMatches)
	}

	if result.TotalText == 0 {
		t.Error("TotalText not recorded")
	}
}

func TestScanFileMissing(t *testing.T) {
	s := New(extract.New(), false)

	if _, err := s.ScanFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
