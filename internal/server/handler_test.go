package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/revisit/internal/learning"
	mock_server "github.com/at-ishikawa/revisit/internal/mocks/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, service ItemService) *gin.Engine {
	t.Helper()
	router, err := NewRouter(RouterConfig{
		Service:        service,
		AllowedOrigins: []string{"http://localhost:3000"},
		AppName:        "Spaced Repetition Review Tool",
		Version:        "1.0.0",
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return router
}

func testItem() *learning.Item {
	createdAt := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return &learning.Item{
		ID:             "item-1",
		Subject:        "Go",
		Title:          "Channels",
		Content:        "Unbuffered channels synchronise.",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
		NextReviewDate: civil.Date{Year: 2025, Month: time.January, Day: 10},
	}
}

const testItemJSON = `{
	"id": "item-1",
	"subject": "Go",
	"title": "Channels",
	"content": "Unbuffered channels synchronise.",
	"created_at": "2025-01-10T09:00:00Z",
	"updated_at": "2025-01-10T09:00:00Z",
	"review_count": 0,
	"next_review_date": "2025-01-10",
	"current_interval_days": 0,
	"manual_review_count": 0,
	"is_deleted": false
}`

func testReview(manual bool) *learning.Review {
	return &learning.Review{
		ID:             "review-1",
		LearningItemID: "item-1",
		ReviewedAt:     time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
		IntervalDays:   1,
		NextReviewDate: civil.Date{Year: 2025, Month: time.January, Day: 11},
		ReviewNumber:   1,
		IsManual:       manual,
	}
}

func TestHandler(t *testing.T) {
	ptr := func(s string) *string { return &s }
	date := func(day int) civil.Date { return civil.Date{Year: 2025, Month: time.January, Day: day} }

	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		setupMock    func(m *mock_server.MockItemService)
		wantStatus   int
		wantJSON     string
		wantContains []string
	}{
		{
			name:       "root",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
			wantJSON:   `{"message": "Spaced Repetition Review Tool API", "version": "1.0.0"}`,
		},
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
			wantJSON:   `{"status": "healthy"}`,
		},
		{
			name:   "create item",
			method: http.MethodPost,
			path:   "/api/v1/learning-items/",
			body:   `{"subject": "Go", "title": "Channels", "content": "Unbuffered channels synchronise."}`,
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().
					Create(gomock.Any(), learning.CreateInput{Subject: "Go", Title: "Channels", Content: "Unbuffered channels synchronise."}).
					Return(testItem(), nil)
			},
			wantStatus: http.StatusCreated,
			wantJSON:   testItemJSON,
		},
		{
			name:   "create item without trailing slash",
			method: http.MethodPost,
			path:   "/api/v1/learning-items",
			body:   `{"subject": "Go", "title": "Channels", "content": "Unbuffered channels synchronise."}`,
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(testItem(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "create item with blank fields",
			method: http.MethodPost,
			path:   "/api/v1/learning-items/",
			body:   `{"subject": " ", "title": "Channels", "content": "x"}`,
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &learning.ValidationError{
					Violations: []learning.FieldViolation{{Field: "subject", Message: "subject is a required field"}},
				})
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantJSON: `{
				"error": "ValidationError",
				"message": "validation failed: subject is a required field",
				"details": [{"field": "subject", "message": "subject is a required field"}]
			}`,
		},
		{
			name:         "create item with malformed body",
			method:       http.MethodPost,
			path:         "/api/v1/learning-items/",
			body:         `{"subject": `,
			wantStatus:   http.StatusUnprocessableEntity,
			wantContains: []string{`"error":"ValidationError"`, "invalid request body"},
		},
		{
			name:   "list items with defaults",
			method: http.MethodGet,
			path:   "/api/v1/learning-items/",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().
					List(gomock.Any(), learning.ListQuery{Limit: 100}).
					Return([]learning.Item{*testItem()}, 1, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"items": [` + testItemJSON + `], "total": 1}`,
		},
		{
			name:   "list items with filters",
			method: http.MethodGet,
			path:   "/api/v1/learning-items?subject=Go&skip=20&limit=10",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().
					List(gomock.Any(), learning.ListQuery{Subject: "Go", Skip: 20, Limit: 10}).
					Return(nil, 20, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"items": [], "total": 20}`,
		},
		{
			name:         "list items with limit out of range",
			method:       http.MethodGet,
			path:         "/api/v1/learning-items/?limit=501",
			wantStatus:   http.StatusUnprocessableEntity,
			wantContains: []string{`"field":"limit"`, "limit must be 500 or less"},
		},
		{
			name:         "list items with zero limit",
			method:       http.MethodGet,
			path:         "/api/v1/learning-items/?limit=0",
			wantStatus:   http.StatusUnprocessableEntity,
			wantContains: []string{"limit must be 1 or greater"},
		},
		{
			name:   "list items store failure",
			method: http.MethodGet,
			path:   "/api/v1/learning-items/",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, fmt.Errorf("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantJSON:   `{"error": "InternalServerError", "message": "Internal server error"}`,
		},
		{
			name:   "list subjects",
			method: http.MethodGet,
			path:   "/api/v1/learning-items/subjects",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Subjects(gomock.Any()).Return([]string{"Go", "SQL"}, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `["Go", "SQL"]`,
		},
		{
			name:   "get item",
			method: http.MethodGet,
			path:   "/api/v1/learning-items/item-1",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Get(gomock.Any(), "item-1").Return(testItem(), nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   testItemJSON,
		},
		{
			name:   "get missing item",
			method: http.MethodGet,
			path:   "/api/v1/learning-items/missing",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Get(gomock.Any(), "missing").Return(nil, fmt.Errorf("learning item missing: %w", learning.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
			wantJSON:   `{"error": "NotFound", "message": "Learning item with ID missing not found"}`,
		},
		{
			name:   "update item",
			method: http.MethodPut,
			path:   "/api/v1/learning-items/item-1",
			body:   `{"title": "Buffered channels"}`,
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().
					Update(gomock.Any(), "item-1", learning.UpdateInput{Title: ptr("Buffered channels")}).
					Return(testItem(), nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   testItemJSON,
		},
		{
			name:   "delete item",
			method: http.MethodDelete,
			path:   "/api/v1/learning-items/item-1",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Delete(gomock.Any(), "item-1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "delete missing item",
			method: http.MethodDelete,
			path:   "/api/v1/learning-items/item-1",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Delete(gomock.Any(), "item-1").Return(learning.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "due items today",
			method: http.MethodGet,
			path:   "/api/v1/reviews/due",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Due(gomock.Any(), learning.DueQuery{}).Return([]learning.Item{*testItem()}, nil)
				m.EXPECT().DueCountBySubject(gomock.Any(), civil.Date{}).Return(map[string]int{"Go": 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"items": [` + testItemJSON + `], "total_due": 1, "by_subject": {"Go": 1}}`,
		},
		{
			name:   "due items for a subject and date",
			method: http.MethodGet,
			path:   "/api/v1/reviews/due?subject=SQL&target_date=2025-01-17",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Due(gomock.Any(), learning.DueQuery{Subject: "SQL", Date: date(17)}).Return(nil, nil)
				m.EXPECT().DueCountBySubject(gomock.Any(), date(17)).Return(map[string]int{"Go": 2}, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"items": [], "total_due": 0, "by_subject": {"Go": 2}}`,
		},
		{
			name:         "due items with malformed date",
			method:       http.MethodGet,
			path:         "/api/v1/reviews/due?target_date=17-01-2025",
			wantStatus:   http.StatusUnprocessableEntity,
			wantContains: []string{"target_date must be a date in YYYY-MM-DD format"},
		},
		{
			name:   "mark reviewed",
			method: http.MethodPost,
			path:   "/api/v1/reviews/item-1",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().MarkReviewed(gomock.Any(), "item-1").Return(testItem(), testReview(false), nil)
			},
			wantStatus: http.StatusCreated,
			wantJSON: `{
				"id": "review-1",
				"learning_item_id": "item-1",
				"reviewed_at": "2025-01-10T09:30:00Z",
				"interval_days": 1,
				"next_review_date": "2025-01-11",
				"review_number": 1,
				"is_manual": false
			}`,
		},
		{
			name:   "mark reviewed concurrently",
			method: http.MethodPost,
			path:   "/api/v1/reviews/item-1",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().MarkReviewed(gomock.Any(), "item-1").Return(nil, nil, fmt.Errorf("mark learning item reviewed: %w", learning.ErrConflict))
			},
			wantStatus:   http.StatusConflict,
			wantContains: []string{`"error":"Conflict"`},
		},
		{
			name:   "manual review",
			method: http.MethodPost,
			path:   "/api/v1/reviews/item-1/manual",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().ManualReview(gomock.Any(), "item-1").Return(testItem(), testReview(true), nil)
			},
			wantStatus:   http.StatusCreated,
			wantContains: []string{`"is_manual":true`},
		},
		{
			name:   "manual review of missing item",
			method: http.MethodPost,
			path:   "/api/v1/reviews/missing/manual",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().ManualReview(gomock.Any(), "missing").Return(nil, nil, learning.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantJSON:   `{"error": "NotFound", "message": "Learning item with ID missing not found"}`,
		},
		{
			name:   "history with default limit",
			method: http.MethodGet,
			path:   "/api/v1/reviews/history/item-1",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().History(gomock.Any(), "item-1", 50).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `[]`,
		},
		{
			name:   "history with limit",
			method: http.MethodGet,
			path:   "/api/v1/reviews/history/item-1?limit=5",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().History(gomock.Any(), "item-1", 5).Return([]learning.Review{*testReview(false)}, nil)
			},
			wantStatus:   http.StatusOK,
			wantContains: []string{`"id":"review-1"`},
		},
		{
			name:         "history with limit out of range",
			method:       http.MethodGet,
			path:         "/api/v1/reviews/history/item-1?limit=201",
			wantStatus:   http.StatusUnprocessableEntity,
			wantContains: []string{"limit must be 200 or less"},
		},
		{
			name:   "stats",
			method: http.MethodGet,
			path:   "/api/v1/reviews/stats",
			setupMock: func(m *mock_server.MockItemService) {
				m.EXPECT().Stats(gomock.Any()).Return(&learning.Stats{
					TotalItems:        3,
					TotalReviews:      5,
					ItemsDueToday:     1,
					ItemsDueThisWeek:  2,
					ReviewsByInterval: map[int]int{1: 3, 3: 2},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON: `{
				"total_items": 3,
				"total_reviews": 5,
				"items_due_today": 1,
				"items_due_this_week": 2,
				"reviews_by_interval": {"1": 3, "3": 2}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock_server.NewMockItemService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}
			router := newTestRouter(t, mockService)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequestWithContext(context.Background(), tt.method, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, rec.Body.String())
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
	}{
		{
			name:       "allowed origin",
			origins:    []string{"http://localhost:3000"},
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "unknown origin",
			origins:    []string{"http://localhost:3000"},
			origin:     "http://evil.example.com",
			wantOrigin: "",
		},
		{
			name:       "wildcard",
			origins:    []string{"*"},
			origin:     "http://anywhere.example.com",
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, err := NewRouter(RouterConfig{
				Service:        mock_server.NewMockItemService(gomock.NewController(t)),
				AllowedOrigins: tt.origins,
				Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/learning-items/", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNewRouter_InvalidOrigin(t *testing.T) {
	_, err := NewRouter(RouterConfig{AllowedOrigins: []string{"localhost:3000"}})
	assert.ErrorContains(t, err, "invalid CORS settings")
}
