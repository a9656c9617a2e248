package server

import (
	"inventory/internal/config"
	"inventory/internal/handler"
	mw "inventory/internal/middleware"
	"inventory/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// ルート登録に必要なハンドラ一式
type Handlers struct {
	Products   *handler.ProductHandler
	Orders     *handler.OrderHandler
	Reports    *handler.ReportHandler
	Categories *handler.CategoryHandler
	AuditLogs  *handler.AuditLogHandler
	System     *handler.SystemHandler
}

// echoを組み立てる（起動はしない）
func New(cfg config.Config, logger *log.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger
	e.Validator = validator.NewRequestValidator()

	e.Use(mw.RequestID())
	e.Use(mw.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(mw.CORS(cfg.FrontendURL))

	RegisterRoutes(e, h)
	return e
}
