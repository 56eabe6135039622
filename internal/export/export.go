// Package export writes learning items and their review history to YAML files.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/revisit/internal/client"
	"github.com/at-ishikawa/revisit/internal/learning"
)

const (
	ItemsFileName   = "learning_items.yml"
	HistoryFileName = "review_history.yml"
)

// Source reads items and history, usually from the API client.
type Source interface {
	ListItems(ctx context.Context, query learning.ListQuery) (*client.ItemList, error)
	History(ctx context.Context, id string, limit int) ([]learning.Review, error)
}

// Result counts the exported records.
type Result struct {
	Items   int
	Reviews int
}

type Exporter struct {
	source Source
	writer io.Writer
}

func NewExporter(source Source, writer io.Writer) *Exporter {
	return &Exporter{source: source, writer: writer}
}

// Export collects every active item and its history and writes both files into outputDir.
func (e *Exporter) Export(ctx context.Context, outputDir string) (*Result, error) {
	items, err := e.collectItems(ctx)
	if err != nil {
		return nil, err
	}

	var reviews []learning.Review
	for _, item := range items {
		history, err := e.source.History(ctx, item.ID, learning.MaxHistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("History(%s) > %w", item.ID, err)
		}
		reviews = append(reviews, history...)
		_, _ = fmt.Fprintf(e.writer, "  %s: %d reviews\n", item.Title, len(history))
	}

	if err := NewYAMLSink(outputDir).WriteAll(items, reviews); err != nil {
		return nil, err
	}
	return &Result{Items: len(items), Reviews: len(reviews)}, nil
}

func (e *Exporter) collectItems(ctx context.Context) ([]learning.Item, error) {
	var items []learning.Item
	for skip := 0; ; skip += learning.MaxListLimit {
		page, err := e.source.ListItems(ctx, learning.ListQuery{Skip: skip, Limit: learning.MaxListLimit})
		if err != nil {
			return nil, fmt.Errorf("ListItems(skip=%d) > %w", skip, err)
		}
		items = append(items, page.Items...)
		if len(page.Items) < learning.MaxListLimit || len(items) >= page.Total {
			return items, nil
		}
	}
}

// YAMLSink writes items and reviews to separate YAML files.
type YAMLSink struct {
	outputDir string
}

func NewYAMLSink(outputDir string) *YAMLSink {
	return &YAMLSink{outputDir: outputDir}
}

func (s *YAMLSink) WriteAll(items []learning.Item, reviews []learning.Review) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if items == nil {
		items = []learning.Item{}
	}
	if err := writeYAML(filepath.Join(s.outputDir, ItemsFileName), items); err != nil {
		return fmt.Errorf("write %s: %w", ItemsFileName, err)
	}

	if reviews == nil {
		reviews = []learning.Review{}
	}
	if err := writeYAML(filepath.Join(s.outputDir, HistoryFileName), reviews); err != nil {
		return fmt.Errorf("write %s: %w", HistoryFileName, err)
	}
	return nil
}

func writeYAML(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
