package extract

import "strings"

// ProtocolSet is the set of URL schemes an accepted match may use. It is
// either the allow-all set or a concrete list; the two are distinct so that
// "no restriction" never has to be encoded as a nil slice.
type ProtocolSet struct {
	schemes  map[string]bool
	allowAll bool
}

// AllowAllProtocols returns the set that admits every scheme.
func AllowAllProtocols() ProtocolSet {
	return ProtocolSet{allowAll: true}
}

// AllowProtocols returns the concrete set containing exactly the given
// schemes. Schemes are compared case-insensitively and without a trailing
// colon.
func AllowProtocols(schemes ...string) ProtocolSet {
	set := make(map[string]bool, len(schemes))
	for _, s := range schemes {
		set[strings.ToLower(strings.TrimSuffix(s, ":"))] = true
	}

	return ProtocolSet{schemes: set}
}

// Allows reports whether the given scheme is permitted.
func (p ProtocolSet) Allows(scheme string) bool {
	if p.allowAll {
		return true
	}

	return p.schemes[strings.ToLower(strings.TrimSuffix(scheme, ":"))]
}

// Options configures one extraction pass. Build it with DefaultOptions and
// the With* functional options; it is never mutated once an Extractor holds
// it, so a single Extractor is safe for concurrent use.
type Options struct {
	// RequireProtocol rejects candidates that carry no explicit or
	// protocol-relative scheme of their own.
	RequireProtocol bool

	// DefaultProtocol is the scheme assumed for bare candidates such as
	// "example.com". Empty disables defaulting entirely.
	DefaultProtocol string

	// Protocols is the set of schemes permitted in accepted matches.
	Protocols ProtocolSet

	// Extensions lists filename-like suffixes (case-insensitive, without
	// the dot) that disqualify a bare, path-less candidate whose protocol
	// had to be defaulted. "notes.txt" is dropped; "site.com/notes.txt"
	// and "https://notes.txt" are not.
	Extensions []string

	// BareHostnames lists hostnames without a dot that are nonetheless
	// accepted, e.g. "localhost". They are also folded into the matcher
	// pattern so such candidates are found at all.
	BareHostnames []string

	// Deduplicate suppresses later matches whose normalized form has
	// already been emitted.
	Deduplicate bool
}

// Option mutates Options before an extraction pass.
type Option func(*Options)

// WithRequireProtocol controls whether candidates without a scheme are
// rejected outright.
func WithRequireProtocol(require bool) Option {
	return func(o *Options) { o.RequireProtocol = require }
}

// WithDefaultProtocol sets the scheme assumed for bare candidates. An empty
// string disables protocol defaulting.
func WithDefaultProtocol(scheme string) Option {
	return func(o *Options) { o.DefaultProtocol = strings.ToLower(strings.TrimSuffix(scheme, ":")) }
}

// WithProtocols restricts accepted matches to the given schemes.
func WithProtocols(schemes ...string) Option {
	return func(o *Options) { o.Protocols = AllowProtocols(schemes...) }
}

// WithAllProtocols lifts the scheme restriction entirely.
func WithAllProtocols() Option {
	return func(o *Options) { o.Protocols = AllowAllProtocols() }
}

// WithExtensions replaces the extension exclusion list.
func WithExtensions(extensions ...string) Option {
	return func(o *Options) { o.Extensions = extensions }
}

// WithBareHostnames replaces the list of dot-less hostnames accepted as
// hosts.
func WithBareHostnames(hostnames ...string) Option {
	return func(o *Options) { o.BareHostnames = hostnames }
}

// WithDeduplicate controls suppression of repeated normalized forms.
func WithDeduplicate(dedupe bool) Option {
	return func(o *Options) { o.Deduplicate = dedupe }
}

// DefaultOptions returns the configuration used when no options are given:
// bare candidates get "https", the common transfer schemes are allowed, and
// "localhost" is the only accepted bare hostname.
func DefaultOptions() Options {
	return Options{
		RequireProtocol: false,
		DefaultProtocol: "https",
		Protocols:       AllowProtocols("http", "https", "ftp", "ftps"),
		Extensions:      defaultExtensions(),
		BareHostnames:   []string{"localhost"},
		Deduplicate:     false,
	}
}

// defaultExtensions is static configuration data, not logic: the suffixes
// that make a bare path-less candidate look like a filename rather than a
// hostname.
func defaultExtensions() []string {
	return []string{
		"7z", "avi", "bmp", "css", "csv", "doc", "docx", "exe", "gif",
		"gz", "html", "ico", "iso", "jar", "jpeg", "jpg", "js", "json",
		"md", "mov", "mp3", "mp4", "pdf", "png", "ppt", "pptx", "rar",
		"svg", "tar", "tgz", "tif", "txt", "wav", "webm", "webp", "xls",
		"xlsx", "xml", "yaml", "yml", "zip",
	}
}
