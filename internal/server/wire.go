package server

import (
	"inventory/internal/handler"
	infraRepo "inventory/internal/infra/repository"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"gorm.io/gorm"
)

// Repository → Usecase → Handler を組み立てる
func NewHandlers(gdb *gorm.DB, categoryCache repo.CategoryCache, port string) Handlers {
	//Repository（GORM実装）
	txm := infraRepo.NewTxManagerGorm(gdb)
	productRepo := infraRepo.NewProductGormRepository(gdb)
	categoryRepo := infraRepo.NewCategoryGormRepository(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gdb)
	reportRepo := infraRepo.NewReportGormRepository(gdb)
	auditRepo := infraRepo.NewAuditLogGormRepository(gdb)
	systemRepo := infraRepo.NewSystemGormRepository(gdb)

	//Usecase
	productUC := usecase.NewProductUsecase(txm, productRepo)
	stockUC := usecase.NewStockUsecase(txm)
	saleUC := usecase.NewSaleUsecase(txm)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	reportUC := usecase.NewReportUsecase(reportRepo)
	categoryUC := usecase.NewCategoryUsecase(txm, categoryRepo, categoryCache)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)
	systemUC := usecase.NewSystemUsecase(systemRepo, port)

	//Handler
	return Handlers{
		Products:   handler.NewProductHandler(productUC, stockUC, saleUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Reports:    handler.NewReportHandler(reportUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		AuditLogs:  handler.NewAuditLogHandler(auditUC),
		System:     handler.NewSystemHandler(systemUC),
	}
}
