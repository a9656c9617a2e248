package handler

import (
	"context"
	"net/http"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), he)
		}
		return c.JSON(he.Status, ErrorResponse{
			Error:   he.Message,
			Code:    he.Code,
			Message: he.Detail,
			Details: he.Details,
		})
	}

	//500
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal error",
		Code:    usecase.CodeInternal,
		Message: err.Error(),
	})
}

// /api/products 以下（商品マスタ・入出庫・販売）
type ProductHandler struct {
	products *usecase.ProductUsecase
	stock    *usecase.StockUsecase
	sales    *usecase.SaleUsecase
}

// DI
func NewProductHandler(products *usecase.ProductUsecase, stock *usecase.StockUsecase, sales *usecase.SaleUsecase) *ProductHandler {
	return &ProductHandler{products: products, stock: stock, sales: sales}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/search", h.list)
	g.GET("/products/low-stock", h.lowStock)
	g.GET("/products/:id", h.detail)
	g.POST("/products", h.create)
	g.PUT("/products/:id", h.update)
	g.DELETE("/products/:id", h.delete)

	g.POST("/products/:id/add-stock", h.addStock)
	g.POST("/products/:id/stock-out", h.stockOut)
	g.POST("/products/sell", h.sell)
}

type createProductRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Description   string           `json:"description"`
	CategoryID    int64            `json:"category_id" validate:"required,gt=0"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int64            `json:"stock_quantity" validate:"gte=0,lte=1000000000"`
	ReorderLevel  int64            `json:"reorder_level" validate:"gte=0,lte=1000000000"`
}

type updateProductRequest struct {
	Name         string           `json:"name" validate:"required,max=255"`
	Description  string           `json:"description"`
	CategoryID   int64            `json:"category_id" validate:"required,gt=0"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	ReorderLevel int64            `json:"reorder_level" validate:"gte=0,lte=1000000000"`
}

type stockChangeRequest struct {
	Quantity int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
	Notes    string `json:"notes" validate:"max=500"`
}

// 販売リクエストのキーはフロントに合わせて camelCase
type sellItemRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int64 `json:"quantity" validate:"gt=0,lte=1000000000"`
}

type sellRequest struct {
	Items        []sellItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName string            `json:"customerName" validate:"max=255"`
	Notes        string            `json:"notes" validate:"max=500"`
}

func (h *ProductHandler) list(c echo.Context) error {
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.products.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Q:               c.QueryParam("q"),
		Category:        c.QueryParam("category"),
		Sort:            c.QueryParam("sort"),
		IncludeInactive: includeInactive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.products.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) lowStock(c echo.Context) error {
	out, err := h.products.ListLowStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.products.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         *req.Price,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  req.ReorderLevel,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.products.UpdateProduct(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Price:        *req.Price,
		ReorderLevel: req.ReorderLevel,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.products.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Product deactivated",
		"product_id": id,
	})
}

func (h *ProductHandler) addStock(c echo.Context) error {
	return h.changeStock(c, h.stock.AddStock)
}

func (h *ProductHandler) stockOut(c echo.Context) error {
	return h.changeStock(c, h.stock.StockOut)
}

type stockChangeFunc func(ctx context.Context, productID int64, in usecase.StockChangeInput) (usecase.StockChangeOutput, error)

func (h *ProductHandler) changeStock(c echo.Context, fn stockChangeFunc) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req stockChangeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := fn(c.Request().Context(), id, usecase.StockChangeInput{
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) sell(c echo.Context) error {
	var req sellRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	lines := make([]usecase.SaleLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.SaleLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.sales.Sell(c.Request().Context(), usecase.SellInput{
		Items:        lines,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
