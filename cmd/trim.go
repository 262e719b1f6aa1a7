package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/btraven00/maskay/pkg/extract"
)

// trimCmd represents the trim command
var trimCmd = &cobra.Command{
	Use:   "trim <candidate>",
	Short: "Show how a single candidate moves through the extraction pipeline",
	Long: `Trim walks one candidate string through the extraction stages and prints
what each stage does to it: the punctuation-trimmed form, the resolved
protocol, and the final normalized URL or the point of rejection. Useful for
working out why a given string is or is not reported by scan.

Examples:
  maskay trim "(https://example.com/path)."
  maskay trim "notes.txt"
  maskay trim "//cdn.example.com/app.js"`,
	Args: cobra.ExactArgs(1),
	Run:  runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
}

func runTrim(cmd *cobra.Command, args []string) {
	input := args[0]
	opts := extract.DefaultOptions()

	fmt.Printf("input:      %q\n", input)

	trimmed := extract.TrimPunctuation(input)
	fmt.Printf("trimmed:    %q\n", trimmed)

	if trimmed == "" {
		fmt.Println("verdict:    ❌ rejected (nothing left after trimming)")
		return
	}

	fmt.Printf("length:     %d\n", utf8.RuneCountInString(trimmed))

	resolution, ok := extract.ResolveProtocol(trimmed, opts)
	if !ok {
		fmt.Println("protocol:   none")
		fmt.Println("verdict:    ❌ rejected (no protocol available and none may be inferred)")

		return
	}

	switch {
	case resolution.UsedDefault:
		fmt.Printf("protocol:   %s (defaulted)\n", resolution.Protocol)
	default:
		fmt.Printf("protocol:   %s (explicit)\n", resolution.Protocol)
	}

	matches := extract.Extract(input)
	if len(matches) == 0 {
		fmt.Println("verdict:    ❌ rejected (no well-formed URL survives the filters)")
		return
	}

	for _, m := range matches {
		fmt.Printf("normalized: %s\n", m.Normalized)
	}

	fmt.Println("verdict:    ✅ accepted")
}
