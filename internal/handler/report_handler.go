package handler

import (
	"net/http"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 在庫・売上レポート
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stock-movements/summary", h.stockSummary)
	g.GET("/stock-movements/history", h.movementHistory)
	g.GET("/revenue/summary", h.revenue)
	g.GET("/revenue/top-products", h.topProducts)
}

func (h *ReportHandler) stockSummary(c echo.Context) error {
	out, err := h.uc.StockSummary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) movementHistory(c echo.Context) error {
	productID, err := queryInt64Ptr(c, "product_id")
	if err != nil {
		return writeError(c, err)
	}
	from, to, err := queryRange(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.MovementHistory(c.Request().Context(), usecase.MovementHistoryInput{
		ProductID: productID,
		Type:      c.QueryParam("type"),
		From:      from,
		To:        to,
		Limit:     page.limit,
		Offset:    page.offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) revenue(c echo.Context) error {
	out, err := h.uc.Revenue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) topProducts(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.TopProducts(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
