package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticket-booking/internal/config"
	"github.com/iliyamo/event-ticket-booking/internal/handler"
	"github.com/iliyamo/event-ticket-booking/internal/middleware"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// RegisterCustomer registers the customer-facing endpoints under
// /customers.  The catalog GETs are public and pass through the Redis
// response cache; profile and order routes require a valid token.  Order
// routes are open to any authenticated role so organizers and admins may
// also purchase.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, o *handler.OrderHandler,
	jwtSecret string, users *repository.UserRepo, cacheCfg config.CacheConfig, rdb *redis.Client) {

	pub := e.Group("/customers", middleware.NewRedisCache(cacheCfg, rdb))
	pub.GET("/", h.BrowseEvents)
	pub.GET("/search", h.SearchEvents)
	pub.GET("/events/:id", h.EventDetail)
	pub.GET("/ticket-classes/:event_id", h.ListTicketClasses)
	pub.GET("/tickets/:event_id", h.ListEventTickets)
	pub.GET("/categories", h.ListCategories)

	g := e.Group("/customers", middleware.JWTAuth(jwtSecret, users))
	g.GET("/profile", h.Profile)
	g.POST("/info", h.UpdateInfo)
	g.POST("/order", o.CreateOrder)
	g.PUT("/order/:id/complete", o.CompleteOrder)
	g.GET("/order/:id", o.ViewOrder)
	g.DELETE("/order/:id", o.DeleteOrder)
	g.GET("/orders/:user_id", o.PurchaseHistory)
}
