package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/middleware/auth"
)

type Deps struct {
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Orders   *OrderHTTP
	Wishlist *WishlistHTTP
	Auth     *AuthHTTP
	Account  *AccountHTTP
	Contact  *ContactHTTP
	Admin    *AdminHTTP

	JWTSecret []byte
	Refresher middleware.Refresher
	Ready     func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.Refresher)

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/firebase", d.Auth.FirebaseLogin)
	auth.POST("/logout", d.Auth.LogOut, authMW.RequireAuth)

	products := e.Group("/catalog/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/all", d.Catalog.GetAllProducts)
	products.GET("/browse", d.Catalog.BrowseProducts)
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("/:id", d.Catalog.GetProduct)
	e.GET("/catalog/categories", d.Catalog.GetCategories)

	cart := e.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.Cart.GetCart)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:id", d.Cart.SetQuantity)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)
	cart.POST("/checkout", d.Cart.Checkout)

	orders := e.Group("/orders", authMW.RequireAuth)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/:id", d.Orders.GetOrder)
	orders.POST("/:id/cancel", d.Orders.CancelOrder)

	wishlist := e.Group("/wishlist", authMW.RequireAuth)
	wishlist.GET("", d.Wishlist.List)
	wishlist.GET("/:productId", d.Wishlist.Member)
	wishlist.POST("/toggle", d.Wishlist.Toggle)
	wishlist.DELETE("/items/:id", d.Wishlist.Remove)

	me := e.Group("/me", authMW.RequireAuth)
	me.GET("/profile", d.Account.GetProfile)
	me.PUT("/profile", d.Account.PutProfile)
	me.GET("/addresses", d.Account.ListAddresses)
	me.POST("/addresses", d.Account.AddAddress)
	me.PUT("/addresses/:id", d.Account.UpdateAddress)
	me.DELETE("/addresses/:id", d.Account.DeleteAddress)

	e.POST("/contact", d.Contact.Submit)

	admin := e.Group("/admin", authMW.RequireAdmin)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
	admin.GET("/products/export", d.Catalog.ExportProducts)
	admin.POST("/categories", d.Catalog.CreateCategory)
	admin.PATCH("/categories/:id", d.Catalog.RenameCategory)
	admin.DELETE("/categories/:id", d.Catalog.DeleteCategory)
	admin.POST("/migrate", d.Admin.Migrate)
	admin.GET("/stats", d.Admin.Stats)
	admin.POST("/search/reindex", d.Catalog.Reindex)
	admin.GET("/orders", d.Orders.ListAllOrders)
	admin.PATCH("/orders/:id", d.Orders.UpdateStatus)
	admin.GET("/contacts", d.Contact.List)
}
