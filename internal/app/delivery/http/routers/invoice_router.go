package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachInvoiceRoutes(router chi.Router, middlewares *middlewares.Middlewares, invoiceController *controllers.InvoiceController) {
	router.Use(middlewares.Authenticate)
	router.Get("/", invoiceController.List)
	router.Get("/search", invoiceController.Search)
	router.Get("/stats", invoiceController.Stats)
	router.Get("/appointment/{id}", invoiceController.GetByAppointment)
	router.Get("/{id}", invoiceController.GetByID)
	router.Get("/{id}/download", invoiceController.Download)

	router.With(middlewares.Authorize).Post("/", invoiceController.Create)
	router.With(middlewares.Authorize).Put("/appointment/{id}", invoiceController.UpdateByAppointment)
	router.With(middlewares.Authorize).Post("/appointment/{id}/settle", invoiceController.SettleByAppointment)
	router.With(middlewares.Authorize).Put("/{id}", invoiceController.Update)
	router.With(middlewares.Authorize).Post("/{id}/settle", invoiceController.Settle)
	router.With(middlewares.Authorize).Delete("/{id}", invoiceController.Delete)
}
