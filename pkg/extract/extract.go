// Package extract locates URL-like substrings inside arbitrary human-written
// text, strips surrounding natural-language punctuation, resolves an
// effective protocol, validates the result as a syntactically well-formed
// URL, and emits a normalized absolute form together with the original
// matched span.
//
// Extraction runs in two stages: a permissive candidate-matching pass over
// the input text, then a deterministic post-processing pass per candidate
// that trims punctuation, classifies the protocol, filters false positives
// (emails, bare filenames, disallowed hostnames and protocols) and produces
// a normalized representation.
//
// The package is a text-analysis utility, not a network client: it never
// resolves DNS, never issues requests, and never validates reachability.
// Extraction is a pure function of (text, options); concurrent calls never
// interfere.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minCandidateLength is the shortest trimmed candidate worth validating.
const minCandidateLength = 4

// Match is one accepted URL occurrence. Raw is the candidate after
// punctuation trimming, with its original casing and without any protocol
// added; Normalized is the fully qualified canonical form; Index is the
// zero-based byte offset of Raw's first character in the input text.
type Match struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Index      int    `json:"index"`
}

// Extractor runs the extraction pipeline for one fixed configuration. The
// candidate pattern is compiled once at construction, so an Extractor should
// be reused when many texts are scanned with the same options. It is safe
// for concurrent use.
type Extractor struct {
	opts       Options
	pattern    *regexp.Regexp
	extensions map[string]bool
}

// New builds an Extractor from the default options overlaid with the given
// ones.
func New(opts ...Option) *Extractor {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	extensions := make(map[string]bool, len(o.Extensions))
	for _, ext := range o.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &Extractor{
		opts:       o,
		pattern:    buildPattern(o.BareHostnames),
		extensions: extensions,
	}
}

// Options returns a copy of the merged configuration the Extractor runs
// with.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract is the convenience form for one-off calls; it compiles a fresh
// pattern per call.
func Extract(text string, opts ...Option) []Match {
	return New(opts...).Extract(text)
}

// Extract scans text left to right and returns every accepted URL in order
// of appearance. Rejections are silent: malformed candidates, emails, bare
// filenames, disallowed protocols and invalid hostnames are simply not
// URLs. The worst outcome for any input is an empty result.
func (e *Extractor) Extract(text string) []Match {
	var matches []Match

	var seen map[string]bool
	if e.opts.Deduplicate {
		seen = make(map[string]bool)
	}

	for _, cand := range findCandidates(e.pattern, text) {
		if looksLikeEmail(cand.text) {
			continue
		}

		raw := TrimPunctuation(cand.text)
		if utf8.RuneCountInString(raw) < minCandidateLength {
			continue
		}

		resolution, ok := ResolveProtocol(raw, e.opts)
		if !ok {
			continue
		}

		normalized, ok := e.normalize(raw, resolution)
		if !ok {
			continue
		}

		if seen != nil {
			if seen[normalized] {
				continue
			}

			seen[normalized] = true
		}

		// Trimming only ever removes punctuation from the ends, and raw
		// cannot begin with a punctuation character, so its first
		// occurrence in the candidate is exactly the trim offset.
		matches = append(matches, Match{
			Raw:        raw,
			Normalized: normalized,
			Index:      cand.index + strings.Index(cand.text, raw),
		})
	}

	return matches
}
