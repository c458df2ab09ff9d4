package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"crpm/internal/customer/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLCustomersRepository(db)
	return NewController(repo, logger)
}
