package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btraven00/maskay/internal/scanner"
	"github.com/btraven00/maskay/pkg/extract"
)

var (
	requireProtocol bool
	defaultProtocol string
	protocolList    []string
	allProtocols    bool
	extensionList   []string
	bareHostnames   []string
	deduplicate     bool
	domainStats     bool
	batchMode       bool
	numWorkers      int
	showProgress    bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [file...]",
	Short: "Find URLs in text files or documents",
	Long: `Scan reads text and reports every well-formed URL it contains, in order of
appearance, each with its original spelling and a normalized absolute form.

Plain files are read as-is; PDF, Word, ODT, RTF and HTML documents are
converted to text first. With no arguments (or "-") the text is read from
standard input.

Extraction options can also be set in the config file (require_protocol,
default_protocol, protocols, extensions, bare_hostnames, deduplicate);
command-line flags take precedence.

Examples:
  maskay scan notes.txt
  cat notes.txt | maskay scan
  maskay scan --output json --stats paper.pdf
  maskay scan --protocols http,https --require-protocol README.md
  maskay scan --batch --workers 8 docs/*.txt`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&requireProtocol, "require-protocol", false, "only report URLs that carry their own protocol")
	scanCmd.Flags().StringVar(&defaultProtocol, "default-protocol", "https", "protocol assumed for bare domains (empty disables)")
	scanCmd.Flags().StringSliceVar(&protocolList, "protocols", nil, "comma-separated list of allowed protocols (default http,https,ftp,ftps)")
	scanCmd.Flags().BoolVar(&allProtocols, "all-protocols", false, "allow every protocol")
	scanCmd.Flags().StringSliceVar(&extensionList, "extensions", nil, "file extensions that disqualify bare path-less candidates")
	scanCmd.Flags().StringSliceVar(&bareHostnames, "hosts", nil, "bare hostnames accepted without a dot (default localhost)")
	scanCmd.Flags().BoolVar(&deduplicate, "dedupe", false, "report each normalized URL only once")
	scanCmd.Flags().BoolVar(&domainStats, "stats", false, "include a per-domain histogram in the summary")
	scanCmd.Flags().BoolVar(&batchMode, "batch", false, "process files in parallel and print a combined summary")
	scanCmd.Flags().IntVar(&numWorkers, "workers", runtime.NumCPU(), "number of parallel workers for batch mode")
	scanCmd.Flags().BoolVar(&showProgress, "progress", true, "show progress during batch processing")
}

func runScan(cmd *cobra.Command, args []string) error {
	s := scanner.New(extract.New(extractionOptions(cmd)...), domainStats)

	if len(args) == 0 {
		args = []string{scanner.Stdin}
	}

	if batchMode {
		return scanBatch(s, args)
	}

	for _, path := range args {
		if !quiet && path != scanner.Stdin {
			fmt.Fprintf(os.Stderr, "Scanning %s...\n", path)
		}

		result, err := s.ScanFile(path)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", path, err)
		}

		if err := outputResult(result); err != nil {
			return err
		}
	}

	return nil
}

// extractionOptions merges config-file values under the command-line flags:
// a flag that was set on the command line wins, otherwise the viper key is
// consulted, otherwise the library default stands.
func extractionOptions(cmd *cobra.Command) []extract.Option {
	flags := cmd.Flags()

	if !flags.Changed("require-protocol") && viper.IsSet("require_protocol") {
		requireProtocol = viper.GetBool("require_protocol")
	}

	if !flags.Changed("default-protocol") && viper.IsSet("default_protocol") {
		defaultProtocol = viper.GetString("default_protocol")
	}

	if !flags.Changed("protocols") && viper.IsSet("protocols") {
		protocolList = viper.GetStringSlice("protocols")
	}

	if !flags.Changed("extensions") && viper.IsSet("extensions") {
		extensionList = viper.GetStringSlice("extensions")
	}

	if !flags.Changed("hosts") && viper.IsSet("bare_hostnames") {
		bareHostnames = viper.GetStringSlice("bare_hostnames")
	}

	if !flags.Changed("dedupe") && viper.IsSet("deduplicate") {
		deduplicate = viper.GetBool("deduplicate")
	}

	opts := []extract.Option{
		extract.WithRequireProtocol(requireProtocol),
		extract.WithDefaultProtocol(defaultProtocol),
		extract.WithDeduplicate(deduplicate),
	}

	switch {
	case allProtocols:
		opts = append(opts, extract.WithAllProtocols())
	case len(protocolList) > 0:
		opts = append(opts, extract.WithProtocols(protocolList...))
	}

	if len(extensionList) > 0 {
		opts = append(opts, extract.WithExtensions(extensionList...))
	}

	if len(bareHostnames) > 0 {
		opts = append(opts, extract.WithBareHostnames(bareHostnames...))
	}

	return opts
}

func scanBatch(s *scanner.Scanner, paths []string) error {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Scanning %d files with %d workers...\n", len(paths), numWorkers)
	}

	pool := scanner.NewPool(s, numWorkers)

	tasks := make([]scanner.Task, 0, len(paths))
	for i, path := range paths {
		tasks = append(tasks, scanner.Task{ID: fmt.Sprintf("task-%d", i+1), Path: path})
	}

	var (
		mu       sync.Mutex
		results  = make(map[string]*scanner.Result, len(paths))
		failures = make(map[string]error)
		wg       sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()

		for res := range pool.Results() {
			mu.Lock()
			if res.Err != nil {
				failures[res.Task.Path] = res.Err
			} else {
				results[res.Task.Path] = res.Result
			}
			mu.Unlock()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		for update := range pool.Progress() {
			if !showProgress || quiet {
				continue
			}

			if update.Status == scanner.TaskStatusCompleted || update.Status == scanner.TaskStatusFailed {
				fmt.Fprintf(os.Stderr, "\rProgress: %d/%d", update.Completed, update.Total)
			}
		}
	}()

	pool.Start()
	pool.SubmitBatch(tasks)
	pool.Wait()
	wg.Wait()

	if showProgress && !quiet {
		fmt.Fprintln(os.Stderr)
	}

	// Emit per-file results in argument order, not completion order.
	for _, path := range paths {
		result, ok := results[path]
		if !ok {
			continue
		}

		if err := outputResult(result); err != nil {
			return err
		}
	}

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d file(s) failed:\n", len(failures))

		for _, path := range paths {
			if err, ok := failures[path]; ok {
				fmt.Fprintf(os.Stderr, "   %s: %v\n", path, err)
			}
		}

		return fmt.Errorf("%d of %d files could not be scanned", len(failures), len(paths))
	}

	return nil
}

func outputResult(result *scanner.Result) error {
	switch strings.ToLower(output) {
	case "json":
		return outputJSON(result)
	case "csv":
		return outputCSV(result)
	case "human":
		return outputHuman(result)
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func outputJSON(result *scanner.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}

func outputCSV(result *scanner.Result) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	header := []string{"source", "raw", "normalized", "index"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, m := range result.Matches {
		row := []string{result.Source, m.Raw, m.Normalized, strconv.Itoa(m.Index)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func outputHuman(result *scanner.Result) error {
	fmt.Printf("📄 Source: %s (%d chars, scanned in %v)\n",
		result.Source, result.TotalText, result.ProcessTime)
	fmt.Printf("🔗 Found %d URLs (%d unique)\n",
		result.Summary.TotalMatches, result.Summary.UniqueMatches)

	for _, m := range result.Matches {
		if m.Raw == m.Normalized {
			fmt.Printf("   • %s [at %d]\n", m.Normalized, m.Index)
		} else {
			fmt.Printf("   • %s (%s) [at %d]\n", m.Normalized, m.Raw, m.Index)
		}
	}

	if len(result.Summary.ByDomain) > 0 {
		fmt.Printf("\n📈 By domain:\n")

		domains := make([]string, 0, len(result.Summary.ByDomain))
		for domain := range result.Summary.ByDomain {
			domains = append(domains, domain)
		}

		// Busiest domains first, ties alphabetical.
		sort.Slice(domains, func(i, j int) bool {
			ci, cj := result.Summary.ByDomain[domains[i]], result.Summary.ByDomain[domains[j]]
			if ci != cj {
				return ci > cj
			}

			return domains[i] < domains[j]
		})

		for _, domain := range domains {
			fmt.Printf("   %s: %d\n", domain, result.Summary.ByDomain[domain])
		}
	}

	return nil
}
