package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const defaultTopProductsLimit = 10

type Repository interface {
	TotalRevenue(ctx context.Context) (float64, error)
	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
	CustomersByAgeRange(ctx context.Context) ([]AgeGroupCount, error)
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

func (c *Controller) HandleTotalRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := c.repo.TotalRevenue(r.Context())
	if err != nil {
		c.writeInternalError(w, "total revenue query failed", err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]float64{"totalRevenue": revenue})
}

func (c *Controller) HandleMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	results, err := c.repo.MonthlyRevenue(r.Context())
	if err != nil {
		c.writeInternalError(w, "monthly revenue query failed", err)
		return
	}

	if results == nil {
		results = []MonthlyRevenue{}
	}
	c.writeJSON(w, http.StatusOK, map[string][]MonthlyRevenue{"monthlyRevenue": results})
}

func (c *Controller) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopProductsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "VALIDATION_ERROR",
				"message": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	results, err := c.repo.TopProducts(r.Context(), limit)
	if err != nil {
		c.writeInternalError(w, "top products query failed", err)
		return
	}

	if results == nil {
		results = []ProductSales{}
	}
	c.writeJSON(w, http.StatusOK, map[string][]ProductSales{"topProducts": results})
}

func (c *Controller) HandleCustomersByAge(w http.ResponseWriter, r *http.Request) {
	results, err := c.repo.CustomersByAgeRange(r.Context())
	if err != nil {
		c.writeInternalError(w, "customers by age query failed", err)
		return
	}

	if results == nil {
		results = []AgeGroupCount{}
	}
	c.writeJSON(w, http.StatusOK, map[string][]AgeGroupCount{"customersByAge": results})
}

func (c *Controller) writeInternalError(w http.ResponseWriter, message string, err error) {
	c.logger.Error(message, zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
