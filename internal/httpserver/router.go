package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
)

type Deps struct {
	UserHandler    *UserHTTP
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	UploadHandler  *UploadHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
	UploadDir      string
	PayPalClientID string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/healthcheck", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := authmw.New(d.JWTSecret)

	api := e.Group("/api")

	api.GET("/config/paypal", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"client_id": d.PayPalClientID})
	})

	users := api.Group("/users")
	users.POST("", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	users.GET("/profile", d.UserHandler.Profile, mw.RequireAuth)
	users.PUT("/profile", d.UserHandler.UpdateProfile, mw.RequireAuth)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/top", d.CatalogHandler.TopProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, mw.RequireAdmin)
	products.PUT("/:id", d.CatalogHandler.PatchProduct, mw.RequireAdmin)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, mw.RequireAdmin)
	products.POST("/:id/reviews", d.CatalogHandler.CreateReview, mw.RequireAuth)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder, mw.RequireAuth)
	orders.GET("", d.OrderHandler.AllOrders, mw.RequireAdmin)
	orders.GET("/myorders", d.OrderHandler.MyOrders, mw.RequireAuth)
	orders.GET("/:id", d.OrderHandler.GetOrder, mw.RequireAuth)
	orders.PUT("/:id/pay", d.OrderHandler.PayOrder, mw.RequireAuth)
	orders.PUT("/:id/deliver", d.OrderHandler.DeliverOrder, mw.RequireAdmin)

	api.POST("/upload", d.UploadHandler.Upload, mw.RequireAdmin)

	api.GET("/search", d.SearchHandler.Search)

	e.Static("/uploads", d.UploadDir)
}
