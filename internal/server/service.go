// Package server exposes learning items and reviews over a JSON HTTP API.
package server

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/at-ishikawa/revisit/internal/learning"
)

//go:generate mockgen -source=service.go -destination=../mocks/server/mock_service.go -package=mock_server

// ItemService is the part of learning.Service the HTTP API needs.
type ItemService interface {
	Create(ctx context.Context, input learning.CreateInput) (*learning.Item, error)
	Get(ctx context.Context, id string) (*learning.Item, error)
	List(ctx context.Context, query learning.ListQuery) ([]learning.Item, int, error)
	Subjects(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, input learning.UpdateInput) (*learning.Item, error)
	Delete(ctx context.Context, id string) error
	MarkReviewed(ctx context.Context, id string) (*learning.Item, *learning.Review, error)
	ManualReview(ctx context.Context, id string) (*learning.Item, *learning.Review, error)
	Due(ctx context.Context, query learning.DueQuery) ([]learning.Item, error)
	DueCountBySubject(ctx context.Context, date civil.Date) (map[string]int, error)
	Stats(ctx context.Context) (*learning.Stats, error)
	History(ctx context.Context, id string, limit int) ([]learning.Review, error)
}

var _ ItemService = (*learning.Service)(nil)
