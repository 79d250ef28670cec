package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

var csvHeader = []string{
	"ID", "Datum", "Gefühle", "Gut", "Dankbarkeit", "Herausforderungen", "Lernen", "Text", "Tags", "Stimmung", "Favorit",
}

func WriteCSV(out io.Writer, entries []store.Entry) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		mood := ""
		if e.Mood != 0 {
			mood = strconv.Itoa(e.Mood)
		}
		row := []string{
			e.ID,
			e.Timestamp.Local().Format(time.RFC3339),
			e.Gefuehle,
			e.Gut,
			e.Dankbarkeit,
			e.Herausforderungen,
			e.Lernen,
			e.Text,
			strings.Join(e.Tags, ", "),
			mood,
			strconv.FormatBool(e.Favorite),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ToCSV(entries []store.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, entries); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return f.Close()
}
