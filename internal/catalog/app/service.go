package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("product api unavailable")
)

const defaultMaxConcurrent = 4

type Service struct {
	source ProductSource

	maxConcurrent int
}

func NewService(source ProductSource, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &Service{
		source:        source,
		maxConcurrent: maxConcurrent,
	}
}

// ListProducts returns the catalog, narrowed to titles containing query when
// query is not blank.
func (s *Service) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(products, query), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.source.Get(ctx, id)
}

// GetMany fetches products concurrently, keeping the order of ids. The first
// failure cancels the remaining lookups.
func (s *Service) GetMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range ids {
		g.Go(func() error {
			p, err := s.GetProduct(ctx, ids[idx])
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", ids[idx], err)
			}
			out[idx] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Search keeps the products whose title contains query, ignoring case.
func Search(products []domain.Product, query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), query) {
			out = append(out, p)
		}
	}
	return out
}
