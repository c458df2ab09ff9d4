package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"crpm/internal/domain"
	apperrors "crpm/internal/errors"
)

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

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	productKey, err := c.repo.Insert(r.Context(), domain.Product{
		ProductName:  req.ProductName,
		Brand:        req.Brand,
		Color:        req.Color,
		UnitCostUSD:  req.UnitCostUSD,
		UnitPriceUSD: req.UnitPriceUSD,
		Subcategory:  req.Subcategory,
		Category:     req.Category,
		StockLevel:   req.StockLevel,
		IsActive:     req.IsActive,
	})
	if err != nil {
		c.logger.Error("create product failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusCreated, CreateProductResponse{ProductKey: productKey})
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := c.repo.List(r.Context())
	if err != nil {
		c.logger.Error("list products failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{
			ProductKey:   p.ProductKey,
			ProductName:  p.ProductName,
			Brand:        p.Brand,
			Color:        p.Color,
			UnitCostUSD:  p.UnitCostUSD,
			UnitPriceUSD: p.UnitPriceUSD,
			Subcategory:  p.Subcategory,
			Category:     p.Category,
			StockLevel:   p.StockLevel,
			IsActive:     p.IsActive,
		})
	}

	c.writeJSON(w, http.StatusOK, ListProductsResponse{Products: dtos})
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	productKeyStr := chi.URLParam(r, "productKey")
	productKey, err := strconv.Atoi(productKeyStr)
	if err != nil || productKey <= 0 {
		c.writeValidationError(w, "invalid productKey", apperrors.ValidationDetail{
			Field:   "productKey",
			Message: "productKey must be a positive integer",
		})
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	err = c.repo.UpdateStatus(r.Context(), productKey, req.IsActive)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": err.Error(),
			})
			return
		}
		c.logger.Error("update product status failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]bool{"isActive": req.IsActive})
}

func (c *Controller) validateCreateRequest(req CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.ProductName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productName",
			Message: "productName is required",
		})
	}

	if req.UnitCostUSD < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "unitCostUsd",
			Message: "unitCostUsd must be non-negative",
		})
	}

	if req.UnitPriceUSD < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "unitPriceUsd",
			Message: "unitPriceUsd must be non-negative",
		})
	}

	if req.StockLevel < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stockLevel",
			Message: "stockLevel must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
