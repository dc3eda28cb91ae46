package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Auth     *service.AuthService
	Producer *mykafka.Producer
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	return uint(id), nil
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return serviceError(l, "get_product_error", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	keyword := c.QueryParam("keyword")
	page := util.ParseIntDefault(c.QueryParam("pageNumber"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(ctx, keyword, offset, limit)
	if err != nil {
		return serviceError(l, "get_products_error", err)
	}

	l.Info("get_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) TopProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.top_products")

	n := util.ParseIntDefault(c.QueryParam("limit"), 3)

	items, err := h.Svc.Top(ctx, n)
	if err != nil {
		return serviceError(l, "top_products_error", err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return serviceError(l, "product_create_error", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.Patch(ctx, req, id)
	if err != nil {
		return serviceError(l, "product_patch_error", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":       "product_updated",
		"product_id": prod.ID,
		"name":       prod.Name,
	})

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return serviceError(l, "product_delete_error", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_review")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_review_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Auth.Profile(ctx, userID)
	if err != nil {
		return serviceError(l, "create_review_error", err)
	}

	prod, err := h.Svc.AddReview(ctx, id, userID, user.Name, req)
	if err != nil {
		return serviceError(l, "create_review_error", err)
	}

	l.Info("create_review_success", "product_id", prod.ID, "num_reviews", prod.NumReviews)
	return c.JSON(http.StatusCreated, prod)
}
