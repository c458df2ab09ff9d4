package product

import (
	"database/sql"

	"go.uber.org/zap"

	"crpm/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductsRepository(db)
	return NewController(repo, logger)
}
