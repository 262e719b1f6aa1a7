package extract

import (
	"regexp"
	"strings"
)

// schemePrefix matches an explicit "scheme://" prefix: a letter followed by
// letters, digits, "+", "-" or ".".
var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Resolution describes how the effective protocol of a candidate was
// determined.
type Resolution struct {
	// Protocol is the effective scheme, without "://".
	Protocol string

	// Explicit is true when the candidate carried its own scheme or was
	// protocol-relative ("//host/...").
	Explicit bool

	// UsedDefault is true when Protocol came from the configured default
	// rather than from the candidate itself.
	UsedDefault bool
}

// ResolveProtocol decides the effective protocol for a cleaned candidate.
// The second return value is false when no protocol can be resolved, which
// means the candidate must be discarded: it has no scheme of its own and the
// configuration permits none to be inferred.
func ResolveProtocol(candidate string, opts Options) (Resolution, bool) {
	if prefix := schemePrefix.FindString(candidate); prefix != "" {
		scheme := strings.ToLower(strings.TrimSuffix(prefix, "://"))
		return Resolution{Protocol: scheme, Explicit: true}, true
	}

	if strings.HasPrefix(candidate, "//") && opts.DefaultProtocol != "" {
		// Protocol-relative counts as explicit: the author deferred the
		// scheme on purpose.
		return Resolution{Protocol: opts.DefaultProtocol, Explicit: true}, true
	}

	if !opts.RequireProtocol && opts.DefaultProtocol != "" {
		return Resolution{Protocol: opts.DefaultProtocol, UsedDefault: true}, true
	}

	return Resolution{}, false
}
