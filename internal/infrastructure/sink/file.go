// Package sink holds the report collaborators: file export and clipboard
// copy. Both receive the exact displayed report text; neither touches the
// request lifecycle.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileExporter writes the displayed report to a timestamped plain-text file.
type FileExporter struct {
	Dir string
	now func() time.Time
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir, now: time.Now}
}

// Export writes the report and returns the path written. The filename carries
// a timestamp so successive exports never collide.
func (e *FileExporter) Export(reportText string) (string, error) {
	if reportText == "" {
		return "", fmt.Errorf("no report to export")
	}
	now := e.now
	if now == nil {
		now = time.Now
	}
	name := fmt.Sprintf("audittrail-report-%s.txt", now().Format("20060102-150405"))
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, []byte(reportText), 0644); err != nil {
		return "", fmt.Errorf("failed to export report: %w", err)
	}
	return path, nil
}
