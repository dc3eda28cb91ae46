package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Reviews").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, keyword string, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if keyword != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) TopProducts(ctx context.Context, n int) ([]models.Product, error) {
	items := make([]models.Product, 0, n)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("rating DESC").Limit(n).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}
	if req.Brand != nil {
		prod.Brand = *req.Brand
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.CountInStock != nil {
		prod.CountInStock = *req.CountInStock
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddReview appends the review and recomputes the product aggregates in one
// transaction, keeping num_reviews == len(reviews) and rating == mean.
func (r *GormRepo) AddReview(ctx context.Context, productID uint, rev *models.Review) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.First(&prod, productID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", productID, rev.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrReviewExists
		}

		rev.ProductID = productID
		if err := tx.Create(rev).Error; err != nil {
			return err
		}

		var agg struct {
			N   int64
			Avg float64
		}
		if err := tx.Model(&models.Review{}).
			Where("product_id = ?", productID).
			Select("COUNT(*) AS n, AVG(rating) AS avg").
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Product{}).Where("id = ?", productID).
			Updates(map[string]any{"num_reviews": agg.N, "rating": agg.Avg}).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetProduct(ctx, productID)
}
