package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return serviceError(l, "create_order_error", err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalPrice,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.Get(ctx, id)
	if err != nil {
		return serviceError(l, "get_order_error", err)
	}

	if order.UserID != userID && !isAdmin(c) {
		l.Warn("get_order_error", "status", 403, "reason", "not the order owner")
		return echo.NewHTTPError(http.StatusForbidden, "not the order owner")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) PayOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.pay_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, err := currentUserID(c); err != nil {
		return err
	}

	var req transport.PaymentResult
	if err := c.Bind(&req); err != nil {
		l.Warn("pay_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.MarkPaid(ctx, id, req)
	if err != nil {
		return serviceError(l, "pay_order_error", err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":     "order_paid",
		"order_id": order.ID,
	})

	l.Info("pay_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeliverOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.deliver_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.MarkDelivered(ctx, id)
	if err != nil {
		return serviceError(l, "deliver_order_error", err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":     "order_delivered",
		"order_id": order.ID,
	})

	l.Info("deliver_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.my_orders")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListForUser(ctx, userID)
	if err != nil {
		return serviceError(l, "my_orders_error", err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) AllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.all_orders")

	orders, err := h.Svc.ListAll(ctx)
	if err != nil {
		return serviceError(l, "all_orders_error", err)
	}

	return c.JSON(http.StatusOK, orders)
}
