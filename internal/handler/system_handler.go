package handler

import (
	"net/http"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SystemHandler struct {
	uc *usecase.SystemUsecase
}

func NewSystemHandler(uc *usecase.SystemUsecase) *SystemHandler {
	return &SystemHandler{uc: uc}
}

func (h *SystemHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.health)
	g.GET("/db-test", h.dbTest)
}

type dbTestErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (h *SystemHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Health())
}

// 失敗時も {status, message, error} の形で返す
func (h *SystemHandler) dbTest(c echo.Context) error {
	out, err := h.uc.DBTest(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("db-test: %v", err)
		msg := err.Error()
		if he, ok := usecase.AsHTTPError(err); ok && he.Detail != "" {
			msg = he.Detail
		}
		return c.JSON(http.StatusInternalServerError, dbTestErrorResponse{
			Status:  "ERROR",
			Message: "Database connection failed",
			Error:   msg,
		})
	}
	return c.JSON(http.StatusOK, out)
}
