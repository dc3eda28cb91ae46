package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/util"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	if h.ES == nil {
		l.Warn("search_error", "status", 503, "reason", "search disabled")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
