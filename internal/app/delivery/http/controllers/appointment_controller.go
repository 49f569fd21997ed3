package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	requester, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateAppointment)
	if err := decodeBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, requester.UserID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, requester, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	if wantsDownload(r) {
		document, err := ctrl.AppointmentUsecase.RenderAppointmentDocument(ctx, appointment)
		if err != nil {
			writeError(ctrl.Log, w, err)
			return
		}
		utils.BuildAttachmentResponse(w, document.ContentType, document.FileName, document.Body)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentCreatedSuccess, appointment)
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindAll(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.Int(constvars.LoggingResponseLengthKey, len(appointments)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFoundSuccess, appointments)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.FindByID(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFoundSuccess, appointment)
}

func (ctrl *AppointmentController) FindByPatient(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindByPatient(ctx, chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFoundSuccess, appointments)
}

func (ctrl *AppointmentController) Search(w http.ResponseWriter, r *http.Request) {
	request := &requests.SearchAppointments{
		Name:  r.URL.Query().Get(constvars.QueryName),
		Phone: r.URL.Query().Get(constvars.QueryPhone),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.Search(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFoundSuccess, appointments)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdateAppointmentStatus)
	if err := decodeBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.UpdateAppointmentStatus(ctx, chi.URLParam(r, constvars.URLParamID), request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentStatusUpdatedSuccess, appointment)
}

// SavePrescription updates the patient's latest appointment. `print` or
// `printAndSave` in the body switches the response to the HTML document.
func (ctrl *AppointmentController) SavePrescription(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SavePrescription)
	if err := decodeBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.UpdateLatestByPatient(ctx, chi.URLParam(r, constvars.URLParamPatientID), request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	if request.Print || request.PrintAndSave || wantsDownload(r) {
		document, err := ctrl.AppointmentUsecase.RenderAppointmentDocument(ctx, appointment)
		if err != nil {
			writeError(ctrl.Log, w, err)
			return
		}
		utils.BuildAttachmentResponse(w, document.ContentType, document.FileName, document.Body)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentUpdatedSuccess, appointment)
}

func (ctrl *AppointmentController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.AppointmentUsecase.DeleteAppointment(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentDeletedSuccess, nil)
}

func (ctrl *AppointmentController) BulkDelete(w http.ResponseWriter, r *http.Request) {
	request := new(requests.BulkDeleteAppointments)
	if err := decodeBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	deleted, err := ctrl.AppointmentUsecase.BulkDeleteAppointments(ctx, request.IDs)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BulkDelete succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.Int(constvars.LoggingCountKey, deleted),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsBulkDeletedSuccess, responses.BulkDeleteAppointments{DeletedCount: deleted})
}

func (ctrl *AppointmentController) DeleteByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	deleted, err := ctrl.AppointmentUsecase.DeleteAppointmentsByPatient(ctx, patientID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsBulkDeletedSuccess, responses.DeleteAppointmentsByPatient{
		PatientID:    patientID,
		DeletedCount: deleted,
	})
}
