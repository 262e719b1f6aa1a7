package scanner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
)

// Stdin is the source label used when reading from standard input.
const Stdin = "-"

// documentExtensions are the formats routed through docconv instead of being
// read verbatim.
var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".odt":  true,
	".rtf":  true,
	".html": true,
	".htm":  true,
}

// Load returns the text content of path. "-" reads standard input. Document
// formats (PDF, Word, ODT, RTF, HTML) are converted to plain text through
// docconv; everything else is read as-is.
func Load(path string) (string, error) {
	if path == Stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	if documentExtensions[strings.ToLower(filepath.Ext(path))] {
		response, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("failed to convert document '%s': %w", path, err)
		}

		if strings.TrimSpace(response.Body) == "" {
			return "", fmt.Errorf("no readable text found in '%s'", path)
		}

		return response.Body, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read '%s': %w", path, err)
	}

	return string(data), nil
}
