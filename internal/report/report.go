// Package report renders the items due for review as a printable sheet.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/revisit/internal/learning"
)

// DueSheet is the set of items due on Date.
type DueSheet struct {
	Date  civil.Date
	Items []learning.Item
}

// Markdown renders the sheet grouped by subject. Subjects are sorted and items keep
// their order within a subject.
func (s DueSheet) Markdown() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Reviews due %s\n\n", s.Date)

	if len(s.Items) == 0 {
		buf.WriteString("Nothing is due.\n")
		return buf.Bytes()
	}

	bySubject := map[string][]learning.Item{}
	for _, item := range s.Items {
		bySubject[item.Subject] = append(bySubject[item.Subject], item)
	}
	subjects := make([]string, 0, len(bySubject))
	for subject := range bySubject {
		subjects = append(subjects, subject)
	}
	slices.Sort(subjects)

	fmt.Fprintf(&buf, "%d items in %d subjects.\n", len(s.Items), len(subjects))
	for _, subject := range subjects {
		items := bySubject[subject]
		fmt.Fprintf(&buf, "\n## %s (%d)\n", subject, len(items))
		for _, item := range items {
			fmt.Fprintf(&buf, "\n### %s\n\n", item.Title)
			fmt.Fprintf(&buf, "Due %s, reviewed %d times, current interval %d days.\n",
				item.NextReviewDate, item.ReviewCount, item.CurrentIntervalDays)
			if content := strings.TrimSpace(item.Content); content != "" {
				fmt.Fprintf(&buf, "\n%s\n", content)
			}
		}
	}
	return buf.Bytes()
}

// Write saves the sheet to outputPath. A ".md" path gets the Markdown source and a
// ".pdf" path the rendered PDF. It returns the absolute path of the written file.
func (s DueSheet) Write(outputPath string) (string, error) {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	switch ext := filepath.Ext(outputPath); ext {
	case ".md":
		if err := os.WriteFile(outputPath, s.Markdown(), 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", outputPath, err)
		}
	case ".pdf":
		renderer := mdtopdf.NewPdfRenderer("P", "A4", outputPath, "", nil, mdtopdf.LIGHT)
		if err := renderer.Process(s.Markdown()); err != nil {
			return "", fmt.Errorf("renderer.Process() > %w", err)
		}
	default:
		return "", fmt.Errorf("output file must have .md or .pdf extension: %s", outputPath)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return absPath, nil
}
