package extract

import (
	"regexp"
	"strings"
)

// Building blocks of the candidate pattern. The pattern is intentionally
// over-permissive: it accepts many non-URLs (e.g. "readme.txt") and leaves
// all semantic rejection to the stages behind it.
const (
	// Optional explicit scheme or a bare protocol-relative "//".
	schemePart = `(?:[a-zA-Z][a-zA-Z0-9+.-]*://|//)?`

	// Optional userinfo using the characters RFC 3986 permits there.
	userinfoPart = `(?:[a-zA-Z0-9._~%!$&'()*+,;=-]+(?::[a-zA-Z0-9._~%!$&'()*+,;=-]*)?@)?`

	// One or more dot-separated labels (Unicode letters/digits, internal
	// hyphens, 1-63 chars) ending in a final label of at least two letters.
	// The final label is a generic stand-in for a TLD; no TLD database is
	// consulted.
	domainPart = `(?:[\p{L}\p{N}](?:[\p{L}\p{N}-]{0,61}[\p{L}\p{N}])?\.)+\p{L}{2,}`

	octetPart = `(?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])`

	portPart     = `(?::[0-9]{1,5})?`
	pathPart     = `(?:/[^\s<>?#]*)?`
	queryPart    = `(?:\?[^\s<>#]*)?`
	fragmentPart = `(?:#[^\s<>]*)?`
)

// buildPattern compiles the candidate-matching expression for one extraction
// configuration. The only variable input is the bare-hostname allow list,
// which is folded into the host alternation, so compilation cost is
// proportional to that (small) list. Go's RE2 engine matches in linear time,
// so the pathological-backtracking caveat that haunts permissive URL
// patterns in backtracking engines does not apply here.
func buildPattern(bareHostnames []string) *regexp.Regexp {
	ipv4 := octetPart + `(?:\.` + octetPart + `){3}`

	host := `(?:` + domainPart + `|` + ipv4
	for _, h := range bareHostnames {
		if h == "" {
			continue
		}

		host += `|` + regexp.QuoteMeta(strings.ToLower(h))
	}
	host += `)`

	return regexp.MustCompile(`(?i)` + schemePart + `(?:www\.)?` + userinfoPart +
		host + portPart + pathPart + queryPart + fragmentPart)
}

// candidate is a raw matched substring plus its byte offset in the source
// text. Candidates are ephemeral: each one is consumed by the
// post-processing pipeline immediately after it is produced.
type candidate struct {
	text  string
	index int
}

// findCandidates scans text left to right, non-overlapping and greedy, and
// returns every URL-shaped span in order of appearance.
func findCandidates(pattern *regexp.Regexp, text string) []candidate {
	spans := pattern.FindAllStringIndex(text, -1)
	if spans == nil {
		return nil
	}

	candidates := make([]candidate, 0, len(spans))
	for _, span := range spans {
		candidates = append(candidates, candidate{
			text:  text[span[0]:span[1]],
			index: span[0],
		})
	}

	return candidates
}
