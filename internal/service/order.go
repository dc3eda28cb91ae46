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

// Shipping and tax rule: flat fee below the free-shipping threshold, tax as a
// percentage of the item subtotal rounded half-up to the cent.
const (
	FlatShippingCents          int64 = 500
	FreeShippingThresholdCents int64 = 10000
	TaxRatePercent             int64 = 15
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) Create(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment_method required", ErrValidation)
	}
	addr := req.ShippingAddress
	if addr.Address == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
		return nil, fmt.Errorf("%w: shipping address incomplete", ErrValidation)
	}

	var itemsPrice int64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, it := range req.Items {
		if it.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}

		prod, err := s.Repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
			}
			return nil, err
		}

		lineTotal := prod.Price * int64(it.Quantity)
		itemsPrice += lineTotal

		items = append(items, models.OrderItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			Image:     prod.Image,
			Price:     prod.Price,
			Quantity:  it.Quantity,
		})
	}

	shippingPrice := FlatShippingCents
	if itemsPrice >= FreeShippingThresholdCents {
		shippingPrice = 0
	}
	taxPrice := (itemsPrice*TaxRatePercent + 50) / 100
	totalPrice := itemsPrice + shippingPrice + taxPrice

	order := &models.Order{
		UserID:        userID,
		Items:         items,
		Address:       addr.Address,
		City:          addr.City,
		PostalCode:    addr.PostalCode,
		Country:       addr.Country,
		PaymentMethod: req.PaymentMethod,
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    totalPrice,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	l.Info("order_created", "order_id", created.ID, "total", created.TotalPrice)
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) MarkPaid(ctx context.Context, id uint, result transport.PaymentResult) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.mark_paid")

	order, err := s.Repo.MarkPaid(ctx, id, result.ID, result.Status, result.Email)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		case errors.Is(err, repo.ErrAlreadyPaid):
			return nil, fmt.Errorf("%w: order %d already paid", ErrConflict, id)
		}
		return nil, err
	}

	l.Info("order_paid", "order_id", id)
	return order, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id uint) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.mark_delivered")

	order, err := s.Repo.MarkDelivered(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		case errors.Is(err, repo.ErrNotPaid):
			return nil, fmt.Errorf("%w: order %d not paid yet", ErrPrecondition, id)
		case errors.Is(err, repo.ErrAlreadyDelivered):
			return nil, fmt.Errorf("%w: order %d already delivered", ErrConflict, id)
		}
		return nil, err
	}

	l.Info("order_delivered", "order_id", id)
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersForUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListAllOrders(ctx)
}
