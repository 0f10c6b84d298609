package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/service"
)

// Handlers bundles the endpoint handlers mounted on the router.
type Handlers struct {
	Items         *ItemHandler
	Quotations    *QuotationHandler
	Orders        *OrderHandler
	Invoices      *InvoiceHandler
	Notifications *NotificationHandler
}

// NewHandlers wires the handlers from the service layer.
func NewHandlers(
	availability service.AvailabilityChecker,
	pricing service.PricingEngine,
	quotations service.QuotationService,
	orders service.OrderService,
	invoices service.InvoiceService,
	notifications service.NotificationService,
) *Handlers {
	return &Handlers{
		Items:         NewItemHandler(availability, pricing),
		Quotations:    NewQuotationHandler(quotations),
		Orders:        NewOrderHandler(orders),
		Invoices:      NewInvoiceHandler(invoices),
		Notifications: NewNotificationHandler(notifications),
	}
}

// NewRouter mounts all API routes under /api/v1.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogging)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/items/{id}/availability", h.Items.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}/pricing", h.Items.ListRates).Methods(http.MethodGet)

	api.HandleFunc("/quotations", h.Quotations.Create).Methods(http.MethodPost)
	api.HandleFunc("/quotations", h.Quotations.List).Methods(http.MethodGet)
	api.HandleFunc("/quotations/{id}", h.Quotations.Get).Methods(http.MethodGet)
	api.HandleFunc("/quotations/{id}/send", h.Quotations.Send).Methods(http.MethodPost)
	api.HandleFunc("/quotations/{id}/confirm", h.Quotations.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/quotations/{id}/cancel", h.Quotations.Cancel).Methods(http.MethodPost)

	api.HandleFunc("/orders", h.Orders.List).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.Orders.Get).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/cancel", h.Orders.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/pickup", h.Orders.SchedulePickup).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/pickup/complete", h.Orders.CompletePickup).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/return", h.Orders.ScheduleReturn).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/return/complete", h.Orders.CompleteReturn).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/invoice", h.Invoices.Generate).Methods(http.MethodPost)

	api.HandleFunc("/invoices/{id}", h.Invoices.Get).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/send", h.Invoices.Send).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}/payments", h.Invoices.RecordPayment).Methods(http.MethodPost)

	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
