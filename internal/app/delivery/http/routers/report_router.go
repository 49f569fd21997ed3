package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReportRoutes(router chi.Router, middlewares *middlewares.Middlewares, reportController *controllers.ReportController) {
	router.Use(middlewares.Authenticate)
	router.Get("/appointment/{id}", reportController.GetByAppointment)

	router.With(middlewares.Authorize).Get("/summary", reportController.Summary)
	router.With(middlewares.Authorize).Get("/summary/export", reportController.ExportSummary)
	router.With(middlewares.Authorize).Post("/appointment/{id}/sync", reportController.Sync)
}
