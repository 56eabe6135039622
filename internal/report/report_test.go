package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/revisit/internal/learning"
)

func testSheet() DueSheet {
	return DueSheet{
		Date: civil.Date{Year: 2025, Month: time.January, Day: 14},
		Items: []learning.Item{
			{
				Subject:             "SQL",
				Title:               "Joins",
				Content:             "LEFT JOIN keeps unmatched rows.",
				NextReviewDate:      civil.Date{Year: 2025, Month: time.January, Day: 11},
				ReviewCount:         1,
				CurrentIntervalDays: 1,
			},
			{
				Subject:             "Go",
				Title:               "Channels",
				Content:             "Unbuffered channels synchronise.\n",
				NextReviewDate:      civil.Date{Year: 2025, Month: time.January, Day: 13},
				ReviewCount:         2,
				CurrentIntervalDays: 3,
			},
			{
				Subject:        "Go",
				Title:          "Slices",
				NextReviewDate: civil.Date{Year: 2025, Month: time.January, Day: 14},
			},
		},
	}
}

func TestDueSheet_Markdown(t *testing.T) {
	tests := []struct {
		name  string
		sheet DueSheet
		want  string
	}{
		{
			name:  "grouped by subject",
			sheet: testSheet(),
			want: `# Reviews due 2025-01-14

3 items in 2 subjects.

## Go (2)

### Channels

Due 2025-01-13, reviewed 2 times, current interval 3 days.

Unbuffered channels synchronise.

### Slices

Due 2025-01-14, reviewed 0 times, current interval 0 days.

## SQL (1)

### Joins

Due 2025-01-11, reviewed 1 times, current interval 1 days.

LEFT JOIN keeps unmatched rows.
`,
		},
		{
			name:  "nothing due",
			sheet: DueSheet{Date: civil.Date{Year: 2025, Month: time.January, Day: 14}},
			want:  "# Reviews due 2025-01-14\n\nNothing is due.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(tt.sheet.Markdown()))
		})
	}
}

func TestDueSheet_Write(t *testing.T) {
	tests := []struct {
		name       string
		fileName   string
		wantErrMsg string
		validate   func(t *testing.T, path string)
	}{
		{
			name:     "markdown",
			fileName: "due.md",
			validate: func(t *testing.T, path string) {
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, string(testSheet().Markdown()), string(content))
			},
		},
		{
			name:     "pdf",
			fileName: filepath.Join("reports", "due.pdf"),
			validate: func(t *testing.T, path string) {
				content, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.True(t, len(content) > 4 && string(content[:4]) == "%PDF", "output should be a PDF document")
			},
		},
		{
			name:       "unsupported extension",
			fileName:   "due.txt",
			wantErrMsg: "output file must have .md or .pdf extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), tt.fileName)

			got, err := testSheet().Write(outputPath)
			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
			assert.Equal(t, outputPath, got)
			tt.validate(t, got)
		})
	}
}
