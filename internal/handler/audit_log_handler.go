package handler

import (
	"net/http"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 商品・カテゴリのマスタ変更履歴
type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/audit-logs", h.list)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	resourceID, err := queryInt64Ptr(c, "resource_id")
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

	out, err := h.uc.List(c.Request().Context(), usecase.ListAuditLogsInput{
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   resourceID,
		From:         from,
		To:           to,
		Limit:        page.limit,
		Offset:       page.offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
