package cmd

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/btraven00/maskay/internal/scanner"
	"github.com/btraven00/maskay/pkg/extract"
)

func TestExtractionOptionsDefaults(t *testing.T) {
	opts := extract.New(extractionOptions(scanCmd)...).Options()

	if opts.RequireProtocol {
		t.Error("RequireProtocol should default to false")
	}

	if opts.DefaultProtocol != "https" {
		t.Errorf("DefaultProtocol = %q, want %q", opts.DefaultProtocol, "https")
	}

	if !opts.Protocols.Allows("ftp") {
		t.Error("default protocol set should allow ftp")
	}

	if opts.Protocols.Allows("gopher") {
		t.Error("default protocol set should reject gopher")
	}

	if opts.Deduplicate {
		t.Error("Deduplicate should default to false")
	}
}

func TestExtractionOptionsConfigFallback(t *testing.T) {
	viper.Set("deduplicate", true)
	viper.Set("bare_hostnames", []string{"intranet"})

	t.Cleanup(viper.Reset)

	opts := extract.New(extractionOptions(scanCmd)...).Options()

	if !opts.Deduplicate {
		t.Error("expected deduplicate from config to apply")
	}

	if len(opts.BareHostnames) != 1 || opts.BareHostnames[0] != "intranet" {
		t.Errorf("BareHostnames = %v, want [intranet]", opts.BareHostnames)
	}

	// Restore the package-level flag variables the fallback mutated.
	deduplicate = false
	bareHostnames = nil
}

func TestExtractionOptionsFlagsWin(t *testing.T) {
	flags := scanCmd.Flags()

	if err := flags.Set("protocols", "http"); err != nil {
		t.Fatal(err)
	}

	if err := flags.Set("require-protocol", "true"); err != nil {
		t.Fatal(err)
	}

	viper.Set("protocols", []string{"ftp"})
	viper.Set("require_protocol", false)

	t.Cleanup(viper.Reset)

	opts := extract.New(extractionOptions(scanCmd)...).Options()

	if !opts.RequireProtocol {
		t.Error("command-line flag should win over config value")
	}

	if !opts.Protocols.Allows("http") || opts.Protocols.Allows("ftp") {
		t.Error("protocol list from the command line should win over config")
	}
}

func TestOutputFlagOnRoot(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("output")
	if flag == nil {
		t.Fatal("expected a persistent --output flag on the root command")
	}

	if flag.DefValue != "human" {
		t.Errorf("output flag default = %q, want %q", flag.DefValue, "human")
	}

	original := output
	t.Cleanup(func() { output = original })

	output = "yaml"
	if err := outputResult(&scanner.Result{}); err == nil {
		t.Error("expected an error for an unsupported output format")
	}
}
