// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	SessionHandler *handler.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	sessionHandler *handler.SessionHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		sessionHandler: params.SessionHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	users := e.Group("/users")

	// Login is the only route reachable without a session token.
	users.POST("/login", r.sessionHandler.Login)

	authed := users.Group("")
	authed.Use(r.authMiddleware.Authenticate)
	{
		// Any authenticated caller; fine-grained rules live in the use cases.
		authed.PUT("/:id", r.accountHandler.Update)
		authed.PUT("/:id/password", r.accountHandler.ChangePassword)
		authed.PUT("/:id/login", r.accountHandler.ChangeLogin)
		authed.POST("/credentials", r.sessionHandler.ValidateCredentials)
	}

	admin := users.Group("")
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(r.authMiddleware.RequireAdmin)
	{
		admin.POST("", r.accountHandler.Create)
		admin.GET("/active", r.accountHandler.ListActive)
		admin.GET("/older-than/:years", r.accountHandler.ListOlderThan)
		admin.GET("/:login", r.accountHandler.GetByLogin)
		admin.DELETE("/:login", r.accountHandler.Delete)
		admin.PUT("/:login/restore", r.accountHandler.Restore)
	}
}
