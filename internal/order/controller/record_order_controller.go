package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"crpm/internal/domain"
	"crpm/internal/dto"
	apperrors "crpm/internal/errors"
)

const orderDateFormat = "2006-01-02"

type RecordOrderUseCase interface {
	RecordOrder(ctx context.Context, customerID int, lines []dto.OrderLine) (*dto.OrderResult, error)
	GetOrder(ctx context.Context, orderNumber int64) ([]domain.SaleLine, error)
}

type RecordOrderController struct {
	useCase  RecordOrderUseCase
	logger   *zap.Logger
	maxLines int
}

func NewRecordOrderController(useCase RecordOrderUseCase, logger *zap.Logger, maxLines int) *RecordOrderController {
	return &RecordOrderController{
		useCase:  useCase,
		logger:   logger,
		maxLines: maxLines,
	}
}

func (c *RecordOrderController) RecordOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.RecordOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateRecordOrderRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	lines := make([]dto.OrderLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = dto.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}

	result, err := c.useCase.RecordOrder(r.Context(), req.CustomerID, lines)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeRecordOrderResponse(w, traceID, result)
}

func (c *RecordOrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderNumberStr := chi.URLParam(r, "orderNumber")
	orderNumber, err := strconv.ParseInt(orderNumberStr, 10, 64)
	if err != nil || orderNumber <= 0 {
		c.writeValidationError(w, "invalid orderNumber", apperrors.ValidationDetail{
			Field:   "orderNumber",
			Message: "orderNumber must be a positive integer",
		})
		return
	}

	saleLines, err := c.useCase.GetOrder(r.Context(), orderNumber)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	lineDTOs := make([]dto.SaleLineDTO, 0, len(saleLines))
	for _, line := range saleLines {
		lineDTOs = append(lineDTOs, dto.SaleLineDTO{
			LineItem:  line.LineItem,
			ProductID: line.ProductKey,
			Quantity:  line.Quantity,
		})
	}

	c.writeJSON(w, http.StatusOK, dto.OrderViewResponse{
		TraceID:     traceID,
		OrderNumber: orderNumber,
		OrderDate:   saleLines[0].OrderDate.Format(orderDateFormat),
		CustomerID:  saleLines[0].CustomerKey,
		Lines:       lineDTOs,
	})
}

func (c *RecordOrderController) validateRecordOrderRequest(req dto.RecordOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerID <= 0 {
		msg := "customerId must be a positive integer"
		if req.CustomerID == 0 {
			msg = "customerId is required"
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: msg,
		})
	}

	if len(req.Lines) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "lines",
			Message: "lines must not be empty",
		})
	}

	if c.maxLines > 0 && len(req.Lines) > c.maxLines {
		details = append(details, apperrors.ValidationDetail{
			Field:   "lines",
			Message: "lines exceeds maximum of " + strconv.Itoa(c.maxLines),
		})
	}

	for idx, line := range req.Lines {
		if line.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "lines[" + strconv.Itoa(idx) + "].productId",
				Message: "each productId must be a positive integer",
			})
		}

		if line.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "lines[" + strconv.Itoa(idx) + "].quantity",
				Message: "each quantity must be a positive integer",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *RecordOrderController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsSequenceRaceError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "SEQUENCE_RACE", err.Error())
		return
	}

	if _, ok := apperrors.IsStorageError(err); ok {
		logger.Error("storage failure", zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "STORAGE_ERROR", "order could not be recorded")
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *RecordOrderController) writeRecordOrderResponse(w http.ResponseWriter, traceID string, result *dto.OrderResult) {
	outcomes := make([]dto.LineOutcomeDTO, len(result.Outcomes))
	for i, o := range result.Outcomes {
		outcomes[i] = dto.LineOutcomeDTO{
			ProductID: o.ProductID,
			Quantity:  o.Quantity,
			Status:    string(o.Status),
			Reason:    string(o.Reason),
		}
	}

	response := dto.RecordOrderResponse{
		TraceID:     traceID,
		OrderNumber: result.OrderNumber,
		OrderDate:   result.OrderDate.Format(orderDateFormat),
		Outcomes:    outcomes,
		Timestamp:   time.Now().UTC(),
	}

	statusCode := http.StatusOK
	if result.AllRejected() {
		statusCode = http.StatusUnprocessableEntity
	} else if !result.AllAccepted() {
		statusCode = http.StatusPartialContent
	}

	c.writeJSON(w, statusCode, response)
}

func (c *RecordOrderController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *RecordOrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *RecordOrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
