package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
}

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase) *ReportController {
	return &ReportController{
		Log:           logger,
		ReportUsecase: reportUsecase,
	}
}

func (ctrl *ReportController) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := summaryFilterFromQuery(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := ctrl.ReportUsecase.Summary(ctx, filter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportSummaryGetSuccess, summary)
}

func (ctrl *ReportController) ExportSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := summaryFilterFromQuery(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	document, err := ctrl.ReportUsecase.ExportSummary(ctx, filter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildAttachmentResponse(w, document.ContentType, document.FileName, document.Body)
}

func (ctrl *ReportController) GetByAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := ctrl.ReportUsecase.GetByAppointment(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, report)
}

func (ctrl *ReportController) Sync(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, constvars.URLParamID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := ctrl.ReportUsecase.Sync(ctx, appointmentID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	if report == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAppointmentNotFound(nil, appointmentID))
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportSyncedSuccess, report)
}

func summaryFilterFromQuery(r *http.Request) (*requests.ReportSummaryFilter, error) {
	query := r.URL.Query()
	start, err := queryTime(r, constvars.QueryStart)
	if err != nil {
		return nil, err
	}
	end, err := queryTime(r, constvars.QueryEnd)
	if err != nil {
		return nil, err
	}

	doctorID := query.Get(constvars.QueryDoctorID)
	if doctorID == "" {
		doctorID = query.Get(constvars.QueryDoctor)
	}
	return &requests.ReportSummaryFilter{
		Start:    start,
		End:      end,
		DoctorID: doctorID,
		GroupBy:  query.Get(constvars.QueryGroupBy),
		Source:   query.Get(constvars.QuerySource),
	}, nil
}
