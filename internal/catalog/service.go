package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/Precipitate-AI/epic/internal/repository"
	"golang.org/x/sync/singleflight"
)

// Service is the read-only catalog surface. Product pages are read-heavy,
// so GetBySlug goes through a cache with singleflight collapsing concurrent
// misses for the same slug. Cache failures degrade to the repository.
type Service struct {
	repo  repository.ProductRepository
	cache ProductCache
	sfg   singleflight.Group
}

func NewService(repo repository.ProductRepository, cache ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(slug, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, slug)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.repo.GetProductBySlug(ctx, slug)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), slug, product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

// GetByIDs is the price-verification path for checkout. It always reads the
// repository directly so checkout sees current catalog truth, never a cached
// snapshot.
func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	return s.repo.GetProductsByIDs(ctx, ids)
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx)
}
