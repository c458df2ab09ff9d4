package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"crpm/internal/analytics"
	"crpm/internal/customer"
	ordercontroller "crpm/internal/order/controller"
	"crpm/internal/product"
)

func NewRouter(
	orderCtrl *ordercontroller.RecordOrderController,
	customerCtrl *customer.Controller,
	productCtrl *product.Controller,
	analyticsCtrl *analytics.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/orders", orderCtrl.RecordOrder)
		r.Get("/orders/{orderNumber}", orderCtrl.GetOrder)

		r.Post("/customers", customerCtrl.HandleCreate)
		r.Get("/customers", customerCtrl.HandleList)

		r.Post("/products", productCtrl.HandleCreate)
		r.Get("/products", productCtrl.HandleList)
		r.Patch("/products/{productKey}/status", productCtrl.HandleUpdateStatus)

		r.Get("/analytics/revenue", analyticsCtrl.HandleTotalRevenue)
		r.Get("/analytics/monthly-revenue", analyticsCtrl.HandleMonthlyRevenue)
		r.Get("/analytics/top-products", analyticsCtrl.HandleTopProducts)
		r.Get("/analytics/customers-by-age", analyticsCtrl.HandleCustomersByAge)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
