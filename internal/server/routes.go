package server

import (
	"github.com/labstack/echo/v4"
)

// すべて /api 配下
func RegisterRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api")

	h.System.RegisterRoutes(api)
	h.Categories.RegisterRoutes(api)
	h.Products.RegisterRoutes(api)
	h.Orders.RegisterRoutes(api)
	h.Reports.RegisterRoutes(api)
	h.AuditLogs.RegisterRoutes(api)
}
