package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func validAddress() transport.ShippingAddress {
	return transport.ShippingAddress{
		Address:    "12 Main Street",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "USA",
	}
}

func TestOrderService_Create_WorkedExample(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)

	order, err := svc.Create(context.Background(), user.ID, transport.CreateOrderRequest{
		Items:           []transport.CartItem{{ProductID: prod.ID, Quantity: 2}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "PayPal",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), order.ItemsPrice)
	assert.Equal(t, int64(500), order.ShippingPrice)
	assert.Equal(t, int64(600), order.TaxPrice)
	assert.Equal(t, int64(5100), order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.PaidAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, prod.Name, order.Items[0].Name)
	assert.Equal(t, prod.Price, order.Items[0].Price)
}

func TestOrderService_Create_TotalsInvariant(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")

	p1 := seedProduct(t, r, "cable", 799)
	p2 := seedProduct(t, r, "keyboard", 4599)
	p3 := seedProduct(t, r, "monitor", 19900)

	tests := []struct {
		name  string
		items []transport.CartItem
	}{
		{name: "single cheap item", items: []transport.CartItem{{ProductID: p1.ID, Quantity: 1}}},
		{name: "mixed cart", items: []transport.CartItem{{ProductID: p1.ID, Quantity: 3}, {ProductID: p2.ID, Quantity: 1}}},
		{name: "free shipping cart", items: []transport.CartItem{{ProductID: p3.ID, Quantity: 2}}},
		{name: "large quantities", items: []transport.CartItem{{ProductID: p2.ID, Quantity: 7}, {ProductID: p3.ID, Quantity: 1}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			order, err := svc.Create(context.Background(), user.ID, transport.CreateOrderRequest{
				Items:           tt.items,
				ShippingAddress: validAddress(),
				PaymentMethod:   "PayPal",
			})
			require.NoError(t, err)

			assert.Equal(t, order.TotalPrice, order.ItemsPrice+order.ShippingPrice+order.TaxPrice)
			if order.ItemsPrice >= FreeShippingThresholdCents {
				assert.Zero(t, order.ShippingPrice)
			} else {
				assert.Equal(t, FlatShippingCents, order.ShippingPrice)
			}
		})
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)

	tests := []struct {
		name string
		req  transport.CreateOrderRequest
	}{
		{
			name: "empty cart",
			req: transport.CreateOrderRequest{
				ShippingAddress: validAddress(),
				PaymentMethod:   "PayPal",
			},
		},
		{
			name: "zero quantity",
			req: transport.CreateOrderRequest{
				Items:           []transport.CartItem{{ProductID: prod.ID, Quantity: 0}},
				ShippingAddress: validAddress(),
				PaymentMethod:   "PayPal",
			},
		},
		{
			name: "missing payment method",
			req: transport.CreateOrderRequest{
				Items:           []transport.CartItem{{ProductID: prod.ID, Quantity: 1}},
				ShippingAddress: validAddress(),
			},
		},
		{
			name: "incomplete address",
			req: transport.CreateOrderRequest{
				Items:           []transport.CartItem{{ProductID: prod.ID, Quantity: 1}},
				ShippingAddress: transport.ShippingAddress{City: "Springfield"},
				PaymentMethod:   "PayPal",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			order, err := svc.Create(context.Background(), user.ID, tt.req)
			require.Error(t, err)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOrderService_Create_MissingProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")

	order, err := svc.Create(context.Background(), user.ID, transport.CreateOrderRequest{
		Items:           []transport.CartItem{{ProductID: 9999, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "PayPal",
	})
	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_Create_SnapshotSurvivesCatalogEdits(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)

	order, err := svc.Create(context.Background(), user.ID, transport.CreateOrderRequest{
		Items:           []transport.CartItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "PayPal",
	})
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", prod.ID).
		Updates(map[string]any{"price": 9900, "name": "renamed mouse"}).Error)

	got, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "mouse", got.Items[0].Name)
	assert.Equal(t, int64(2000), got.Items[0].Price)
	assert.Equal(t, int64(2000), got.ItemsPrice)
}

func createTestOrder(t *testing.T, svc *OrderService, userID, productID uint) *models.Order {
	t.Helper()

	order, err := svc.Create(context.Background(), userID, transport.CreateOrderRequest{
		Items:           []transport.CartItem{{ProductID: productID, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "PayPal",
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_MarkPaid_SetsPaymentResult(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)
	order := createTestOrder(t, svc, user.ID, prod.ID)

	paid, err := svc.MarkPaid(context.Background(), order.ID, transport.PaymentResult{
		ID:     "PAY-123",
		Status: "COMPLETED",
		Email:  "buyer@example.com",
	})
	require.NoError(t, err)

	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "PAY-123", paid.PaymentID)
	assert.Equal(t, "COMPLETED", paid.PaymentStatus)
	assert.Equal(t, "buyer@example.com", paid.PaymentEmail)
}

func TestOrderService_MarkPaid_SecondCallRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)
	order := createTestOrder(t, svc, user.ID, prod.ID)

	paid, err := svc.MarkPaid(context.Background(), order.ID, transport.PaymentResult{ID: "PAY-1", Status: "COMPLETED"})
	require.NoError(t, err)
	firstPaidAt := *paid.PaidAt

	again, err := svc.MarkPaid(context.Background(), order.ID, transport.PaymentResult{ID: "PAY-2", Status: "COMPLETED"})
	require.Error(t, err)
	assert.Nil(t, again)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(firstPaidAt))
	assert.Equal(t, "PAY-1", got.PaymentID)
}

func TestOrderService_MarkPaid_MissingOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	_, err := svc.MarkPaid(context.Background(), 404, transport.PaymentResult{ID: "PAY-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_MarkDelivered_BeforePayRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)
	order := createTestOrder(t, svc, user.ID, prod.ID)

	delivered, err := svc.MarkDelivered(context.Background(), order.ID)
	require.Error(t, err)
	assert.Nil(t, delivered)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestOrderService_MarkDelivered_Lifecycle(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	prod := seedProduct(t, r, "mouse", 2000)
	order := createTestOrder(t, svc, user.ID, prod.ID)

	_, err := svc.MarkPaid(context.Background(), order.ID, transport.PaymentResult{ID: "PAY-1", Status: "COMPLETED"})
	require.NoError(t, err)

	delivered, err := svc.MarkDelivered(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	require.NotNil(t, delivered.DeliveredAt)

	again, err := svc.MarkDelivered(context.Background(), order.ID)
	require.Error(t, err)
	assert.Nil(t, again)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestOrderService_ListForUser_NewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "buyer", "buyer@example.com")
	other := seedUser(t, r, "other", "other@example.com")
	prod := seedProduct(t, r, "mouse", 2000)

	first := createTestOrder(t, svc, user.ID, prod.ID)
	second := createTestOrder(t, svc, user.ID, prod.ID)
	createTestOrder(t, svc, other.ID, prod.ID)

	base := time.Now().UTC()
	require.NoError(t, r.DB.Model(&models.Order{}).Where("id = ?", first.ID).
		Update("created_at", base.Add(-2*time.Hour)).Error)
	require.NoError(t, r.DB.Model(&models.Order{}).Where("id = ?", second.ID).
		Update("created_at", base.Add(-1*time.Hour)).Error)

	orders, err := svc.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
