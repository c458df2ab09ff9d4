package customer

import (
	"encoding/json"
	"net/http"

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
	var req CreateCustomerRequest
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

	cust := domain.Customer{
		Name:     req.Name,
		Gender:   req.Gender,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		Age:      req.Age,
		AgeRange: domain.AgeRangeFor(req.Age),
	}

	customerKey, err := c.repo.Insert(r.Context(), cust)
	if err != nil {
		c.logger.Error("create customer failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusCreated, CreateCustomerResponse{
		CustomerKey: customerKey,
		AgeRange:    cust.AgeRange,
	})
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := c.repo.List(r.Context())
	if err != nil {
		c.logger.Error("list customers failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, cust := range customers {
		dtos = append(dtos, CustomerDTO{
			CustomerKey: cust.CustomerKey,
			Name:        cust.Name,
			Gender:      cust.Gender,
			City:        cust.City,
			State:       cust.State,
			Country:     cust.Country,
			Age:         cust.Age,
			AgeRange:    cust.AgeRange,
		})
	}

	c.writeJSON(w, http.StatusOK, ListCustomersResponse{Customers: dtos})
}

func (c *Controller) validateCreateRequest(req CreateCustomerRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Age < 0 || req.Age > 120 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "age",
			Message: "age must be between 0 and 120",
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
