package analytics

import (
	"database/sql"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := NewMySQLAnalyticsRepository(db)
	return NewController(repo, logger)
}
