package order

import (
	"database/sql"

	"go.uber.org/zap"

	"crpm/internal/config"
	customerrepo "crpm/internal/customer/repository"
	"crpm/internal/order/controller"
	orderrepo "crpm/internal/order/repository"
	"crpm/internal/order/service"
	"crpm/internal/order/usecase"
	productrepo "crpm/internal/product/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.RecordOrderController {
	salesRepo := orderrepo.NewMySQLSalesRepository(db)
	sequenceRepo := orderrepo.NewMySQLSequenceRepository(db)
	productsRepo := productrepo.NewMySQLProductsRepository(db)
	customersRepo := customerrepo.NewMySQLCustomersRepository(db)

	allocator := service.NewSequenceAllocator(sequenceRepo, salesRepo)
	ledger := service.NewStockLedger(productsRepo, logger)

	uc := usecase.NewRecordOrderUseCase(
		salesRepo,
		allocator,
		ledger,
		customersRepo,
		logger,
		cfg.Order.FulfillTimeout,
	)

	return controller.NewRecordOrderController(uc, logger, cfg.Order.MaxLines)
}
