// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticket-booking/internal/config"
	"github.com/iliyamo/event-ticket-booking/internal/handler"
	"github.com/iliyamo/event-ticket-booking/internal/middleware"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register and login
// are open but sit behind the Redis token-bucket limiter to slow down
// brute force; logout and me require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, users *repository.UserRepo, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/auth", middleware.NewTokenBucket(rlCfg, rdb))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	authed := e.Group("/auth", middleware.JWTAuth(a.Cfg.JWTSecret, users))
	authed.POST("/logout", a.Logout)
	authed.GET("/me", a.Me)
}
