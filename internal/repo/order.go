package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid flips is_paid with a conditional update so concurrent payment
// confirmations for the same order cannot both succeed.
func (r *GormRepo) MarkPaid(ctx context.Context, id uint, paymentID, paymentStatus, paymentEmail string) (*models.Order, error) {
	now := time.Now().UTC()
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND is_paid = ?", id, false).
		Updates(map[string]any{
			"is_paid":        true,
			"paid_at":        now,
			"payment_id":     paymentID,
			"payment_status": paymentStatus,
			"payment_email":  paymentEmail,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var order models.Order
		if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
			return nil, err
		}
		return nil, ErrAlreadyPaid
	}

	return r.GetOrder(ctx, id)
}

func (r *GormRepo) MarkDelivered(ctx context.Context, id uint) (*models.Order, error) {
	now := time.Now().UTC()
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND is_paid = ? AND is_delivered = ?", id, true, false).
		Updates(map[string]any{
			"is_delivered": true,
			"delivered_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var order models.Order
		if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
			return nil, err
		}
		if !order.IsPaid {
			return nil, ErrNotPaid
		}
		return nil, ErrAlreadyDelivered
	}

	return r.GetOrder(ctx, id)
}
