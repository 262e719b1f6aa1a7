package extract

import "testing"

func TestResolveProtocol(t *testing.T) {
	tests := []struct {
		name            string
		candidate       string
		requireProtocol bool
		defaultProtocol string
		want            Resolution
		wantOK          bool
	}{
		{
			name:            "explicit https",
			candidate:       "https://example.com",
			defaultProtocol: "https",
			want:            Resolution{Protocol: "https", Explicit: true},
			wantOK:          true,
		},
		{
			name:            "explicit scheme wins over default",
			candidate:       "ftp://example.com",
			defaultProtocol: "https",
			want:            Resolution{Protocol: "ftp", Explicit: true},
			wantOK:          true,
		},
		{
			name:            "explicit scheme is lowercased",
			candidate:       "HTTPS://EXAMPLE.COM",
			defaultProtocol: "https",
			want:            Resolution{Protocol: "https", Explicit: true},
			wantOK:          true,
		},
		{
			name:            "scheme with plus and dash",
			candidate:       "git+ssh://example.com/repo",
			defaultProtocol: "https",
			want:            Resolution{Protocol: "git+ssh", Explicit: true},
			wantOK:          true,
		},
		{
			name:            "protocol-relative counts as explicit",
			candidate:       "//example.com",
			defaultProtocol: "https",
			want:            Resolution{Protocol: "https", Explicit: true},
			wantOK:          true,
		},
		{
			name:            "protocol-relative without a default",
			candidate:       "//example.com",
			defaultProtocol: "",
			wantOK:          false,
		},
		{
			name:            "bare candidate takes the default",
			candidate:       "example.com",
			defaultProtocol: "https",
			want:            Resolution{Protocol: "https", UsedDefault: true},
			wantOK:          true,
		},
		{
			name:            "bare candidate with protocol required",
			candidate:       "example.com",
			requireProtocol: true,
			defaultProtocol: "https",
			wantOK:          false,
		},
		{
			name:            "protocol-relative accepted even when required",
			candidate:       "//example.com",
			requireProtocol: true,
			defaultProtocol: "https",
			want:            Resolution{Protocol: "https", Explicit: true},
			wantOK:          true,
		},
		{
			name:            "bare candidate with empty default",
			candidate:       "example.com",
			defaultProtocol: "",
			wantOK:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.RequireProtocol = tt.requireProtocol
			opts.DefaultProtocol = tt.defaultProtocol

			got, ok := ResolveProtocol(tt.candidate, opts)
			if ok != tt.wantOK {
				t.Fatalf("ResolveProtocol(%q) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}

			if ok && got != tt.want {
				t.Errorf("ResolveProtocol(%q) = %+v, want %+v", tt.candidate, got, tt.want)
			}
		})
	}
}
