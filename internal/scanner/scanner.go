// Package scanner drives the extraction library over files and streams: it
// loads text (converting binary document formats on the way in), runs the
// extractor, and assembles per-input result envelopes with summary
// statistics. Batch scanning fans inputs out to a worker pool.
package scanner

import (
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/btraven00/maskay/pkg/extract"
)

// Result is the outcome of scanning one input.
type Result struct {
	Source      string          `json:"source"`
	TotalText   int             `json:"total_text"`
	Matches     []extract.Match `json:"matches"`
	Summary     Stats           `json:"summary"`
	ProcessTime time.Duration   `json:"process_time"`
}

// Stats summarizes the matches of one scan.
type Stats struct {
	TotalMatches  int            `json:"total_matches"`
	UniqueMatches int            `json:"unique_matches"`
	ByDomain      map[string]int `json:"by_domain,omitempty"`
}

// Scanner runs one extraction configuration over many inputs. It is safe for
// concurrent use; the underlying Extractor is stateless across calls.
type Scanner struct {
	extractor   *extract.Extractor
	domainStats bool
}

// New creates a Scanner around an Extractor. When domainStats is set, each
// result carries a histogram of matches per registrable domain (eTLD+1).
func New(extractor *extract.Extractor, domainStats bool) *Scanner {
	return &Scanner{extractor: extractor, domainStats: domainStats}
}

// ScanFile loads the file at path (see Load for the supported formats) and
// scans its text.
func (s *Scanner) ScanFile(path string) (*Result, error) {
	text, err := Load(path)
	if err != nil {
		return nil, err
	}

	return s.ScanText(path, text), nil
}

// ScanText scans already-loaded text. The source label is carried through to
// the result unchanged.
func (s *Scanner) ScanText(source, text string) *Result {
	start := time.Now()
	matches := s.extractor.Extract(text)

	return &Result{
		Source:      source,
		TotalText:   len(text),
		Matches:     matches,
		Summary:     s.summarize(matches),
		ProcessTime: time.Since(start),
	}
}

func (s *Scanner) summarize(matches []extract.Match) Stats {
	stats := Stats{TotalMatches: len(matches)}

	unique := make(map[string]bool, len(matches))
	for _, m := range matches {
		unique[m.Normalized] = true
	}
	stats.UniqueMatches = len(unique)

	if s.domainStats && len(matches) > 0 {
		stats.ByDomain = make(map[string]int)
		for _, m := range matches {
			stats.ByDomain[registrableDomain(m.Normalized)]++
		}
	}

	return stats
}

// registrableDomain reduces a normalized URL to its eTLD+1 for grouping.
// Hosts the public suffix list cannot place (bare hostnames, IP literals)
// group under the hostname itself.
func registrableDomain(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil {
		return normalized
	}

	host := u.Hostname()

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}

	return domain
}
