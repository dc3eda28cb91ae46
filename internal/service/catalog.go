package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

// List never fails on zero matches; an unmatched keyword yields an empty page.
func (s *CatalogService) List(ctx context.Context, keyword string, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, keyword, offset, limit)
}

func (s *CatalogService) Top(ctx context.Context, n int) ([]models.Product, error) {
	if n <= 0 {
		n = 3
	}
	return s.Repo.TopProducts(ctx, n)
}

func (s *CatalogService) Create(ctx context.Context, userID uint, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod := &models.Product{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Brand:        req.Brand,
		Category:     req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}

	return s.Repo.CreateProduct(ctx, prod)
}

func (s *CatalogService) Patch(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) AddReview(ctx context.Context, productID, userID uint, userName string, req transport.CreateReviewRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.add_review")

	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if req.Comment == "" {
		return nil, fmt.Errorf("%w: comment required", ErrValidation)
	}

	rev := &models.Review{
		UserID:  userID,
		Name:    userName,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	prod, err := s.Repo.AddReview(ctx, productID, rev)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		case errors.Is(err, repo.ErrReviewExists):
			return nil, fmt.Errorf("%w: product already reviewed", ErrConflict)
		}
		return nil, err
	}

	l.Info("review_added", "product_id", productID, "rating", req.Rating)
	return prod, nil
}
