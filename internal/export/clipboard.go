package export

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/sadopc/mentaljournal/internal/store"
)

var ErrNoClipboard = errors.New("no clipboard utility available")

// clipboardWrite is replaced in tests.
var clipboardWrite = func(text string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	return clipboard.WriteAll(text)
}

// ToClipboard copies the text export of entries to the system clipboard.
func ToClipboard(entries []store.Entry) error {
	if err := clipboardWrite(Text(entries)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
