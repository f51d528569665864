package sink

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboard marks a failed copy. It is distinct from any audit failure so
// the UI can say "copy failed" without touching the request presentation.
var ErrClipboard = errors.New("clipboard copy failed")

// Clipboard copies the displayed report text to the system clipboard.
type Clipboard struct{}

func (Clipboard) Copy(reportText string) error {
	if reportText == "" {
		return fmt.Errorf("%w: no report to copy", ErrClipboard)
	}
	if err := clipboard.WriteAll(reportText); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
