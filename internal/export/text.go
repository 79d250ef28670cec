// Package export writes journal entries to text, JSON and CSV files and to
// the system clipboard.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sadopc/mentaljournal/internal/store"
)

// TimestampLayout renders entry times the way German locales print them.
const TimestampLayout = "02.01.2006, 15:04:05"

const (
	TextFileName = "journal-entries.txt"
	JSONFileName = "journal-entries.json"
	CSVFileName  = "journal-entries.csv"
)

// Text renders entries as labelled blocks, one per entry, separated by a
// blank line. Every block ends with "---\n".
func Text(entries []store.Entry) string {
	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = textBlock(e)
	}
	return strings.Join(blocks, "\n")
}

func textBlock(e store.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Datum: %s\n", e.Timestamp.Local().Format(TimestampLayout))
	fmt.Fprintf(&b, "Gefühle: %s\n", e.Gefuehle)
	fmt.Fprintf(&b, "Gut: %s\n", e.Gut)
	fmt.Fprintf(&b, "Dankbarkeit: %s\n", e.Dankbarkeit)
	fmt.Fprintf(&b, "Herausforderungen: %s\n", e.Herausforderungen)
	fmt.Fprintf(&b, "Lernen: %s\n", e.Lernen)
	fmt.Fprintf(&b, "Text: %s\n", e.Text)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(e.Tags, ", "))
	b.WriteString("---\n")
	return b.String()
}

func WriteText(w io.Writer, entries []store.Entry) error {
	_, err := io.WriteString(w, Text(entries))
	return err
}

func ToText(entries []store.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create text file: %w", err)
	}
	defer f.Close()

	if err := WriteText(f, entries); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return f.Close()
}
