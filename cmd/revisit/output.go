package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/revisit/internal/learning"
)

type printer struct {
	w       io.Writer
	bold    *color.Color
	subject *color.Color
	faint   *color.Color
	green   *color.Color
	yellow  *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:       w,
		bold:    color.New(color.Bold),
		subject: color.New(color.FgCyan),
		faint:   color.New(color.Faint),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
	}
}

func (p *printer) success(format string, args ...any) {
	_, _ = p.green.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) notice(format string, args ...any) {
	_, _ = p.yellow.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// itemLine prints one item as a single line for lists.
func (p *printer) itemLine(item learning.Item) {
	_, _ = fmt.Fprintf(p.w, "%s  %s %s  %s\n",
		p.faint.Sprint(item.ID),
		p.subject.Sprintf("[%s]", item.Subject),
		p.bold.Sprint(item.Title),
		p.faint.Sprintf("(due %s, reviews %d)", item.NextReviewDate, item.ReviewCount))
}

func (p *printer) item(item learning.Item) {
	_, _ = p.bold.Fprintln(p.w, item.Title)
	fields := []struct {
		label string
		value any
	}{
		{"ID", item.ID},
		{"Subject", p.subject.Sprint(item.Subject)},
		{"Next review", item.NextReviewDate},
		{"Interval", fmt.Sprintf("%d days", item.CurrentIntervalDays)},
		{"Reviews", item.ReviewCount},
		{"Manual reviews", item.ManualReviewCount},
		{"Created", item.CreatedAt.Local().Format("2006-01-02 15:04")},
		{"Updated", item.UpdatedAt.Local().Format("2006-01-02 15:04")},
	}
	for _, f := range fields {
		_, _ = fmt.Fprintf(p.w, "  %-15s %v\n", f.label+":", f.value)
	}
	if content := strings.TrimSpace(item.Content); content != "" {
		_, _ = fmt.Fprintf(p.w, "\n%s\n", content)
	}
}

func (p *printer) review(review learning.Review) {
	kind := "scheduled"
	if review.IsManual {
		kind = "manual"
	}
	_, _ = fmt.Fprintf(p.w, "%s  %-9s #%d  interval %d days, next review %s\n",
		review.ReviewedAt.Local().Format("2006-01-02 15:04"),
		kind,
		review.ReviewNumber,
		review.IntervalDays,
		review.NextReviewDate)
}

// counts prints a map as "key: value" lines sorted by key.
func counts[K int | string](p *printer, m map[K]int, format string) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		_, _ = fmt.Fprintf(p.w, "  "+format+": %d\n", key, m[key])
	}
}
