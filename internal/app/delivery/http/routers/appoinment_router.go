package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	strict := middlewares.StrictRateLimit()

	router.Use(middlewares.Authenticate)
	router.Get("/", appointmentController.FindAll)
	router.Get("/search", appointmentController.Search)
	router.Get("/patient/{patientId}", appointmentController.FindByPatient)
	router.Get("/{id}", appointmentController.FindByID)

	router.With(middlewares.Authorize).Post("/", appointmentController.CreateAppointment)
	router.With(middlewares.Authorize).Put("/patient/{patientId}", appointmentController.SavePrescription)
	router.With(middlewares.Authorize).Put("/{id}/status", appointmentController.UpdateStatus)
	router.With(middlewares.Authorize).Delete("/{id}", appointmentController.Delete)
	router.With(strict, middlewares.Authorize).Post("/bulk-delete", appointmentController.BulkDelete)
	router.With(strict, middlewares.Authorize).Delete("/patient/{patientId}", appointmentController.DeleteByPatient)
}
