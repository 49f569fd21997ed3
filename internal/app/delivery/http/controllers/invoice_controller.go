package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InvoiceController struct {
	Log            *zap.Logger
	InvoiceUsecase contracts.InvoiceUsecase
	ReportUsecase  contracts.ReportUsecase
}

func NewInvoiceController(logger *zap.Logger, invoiceUsecase contracts.InvoiceUsecase, reportUsecase contracts.ReportUsecase) *InvoiceController {
	return &InvoiceController{
		Log:            logger,
		InvoiceUsecase: invoiceUsecase,
		ReportUsecase:  reportUsecase,
	}
}

func (ctrl *InvoiceController) Create(w http.ResponseWriter, r *http.Request) {
	requester, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateInvoice)
	if err := decodeBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.CreatedBy = requester.UserID

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoice, err := ctrl.InvoiceUsecase.CreateInvoice(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.resyncReports(ctx, invoice.Appointment)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.InvoiceCreatedSuccess, invoice)
}

func (ctrl *InvoiceController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := invoiceFilterFromQuery(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoices, total, err := ctrl.InvoiceUsecase.ListInvoices(ctx, filter)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(int(total), filter.Page, filter.Limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.InvoiceFoundSuccess, pagination, invoices)
}

func (ctrl *InvoiceController) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoices, err := ctrl.InvoiceUsecase.SearchInvoices(ctx, r.URL.Query().Get(constvars.QueryQ))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceFoundSuccess, invoices)
}

func (ctrl *InvoiceController) Stats(w http.ResponseWriter, r *http.Request) {
	start, err := queryTime(r, constvars.QueryStart)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	end, err := queryTime(r, constvars.QueryEnd)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := ctrl.InvoiceUsecase.GetInvoiceStats(ctx, &requests.InvoiceStatsFilter{
		Start:  start,
		End:    end,
		Group:  r.URL.Query().Get(constvars.QueryGroup),
		Doctor: r.URL.Query().Get(constvars.QueryDoctor),
	})
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceStatsGetSuccess, stats)
}

func (ctrl *InvoiceController) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoice, err := ctrl.InvoiceUsecase.GetInvoice(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceFoundSuccess, invoice)
}

func (ctrl *InvoiceController) Download(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	document, err := ctrl.InvoiceUsecase.RenderInvoiceDocument(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildAttachmentResponse(w, document.ContentType, document.FileName, document.Body)
}

func (ctrl *InvoiceController) GetByAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoices, err := ctrl.InvoiceUsecase.GetInvoicesByAppointment(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceFoundSuccess, invoices)
}

func (ctrl *InvoiceController) Update(w http.ResponseWriter, r *http.Request) {
	request, ok := ctrl.updateRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoice, err := ctrl.InvoiceUsecase.UpdateInvoice(ctx, chi.URLParam(r, constvars.URLParamID), request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.resyncReports(ctx, invoice.Appointment)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceUpdatedSuccess, invoice)
}

func (ctrl *InvoiceController) UpdateByAppointment(w http.ResponseWriter, r *http.Request) {
	request, ok := ctrl.updateRequest(w, r)
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoices, err := ctrl.InvoiceUsecase.UpdateInvoicesByAppointment(ctx, appointmentID, request)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.resyncReports(ctx, appointmentID)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceUpdatedSuccess, invoices)
}

func (ctrl *InvoiceController) Settle(w http.ResponseWriter, r *http.Request) {
	requester, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoice, err := ctrl.InvoiceUsecase.SettleInvoice(ctx, chi.URLParam(r, constvars.URLParamID), requester.UserID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.resyncReports(ctx, invoice.Appointment)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceSettledSuccess, invoice)
}

func (ctrl *InvoiceController) SettleByAppointment(w http.ResponseWriter, r *http.Request) {
	requester, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamID)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.InvoiceUsecase.SettleInvoicesForAppointment(ctx, appointmentID, requester.UserID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.resyncReports(ctx, appointmentID)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceSettledSuccess, result)
}

func (ctrl *InvoiceController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	invoice, err := ctrl.InvoiceUsecase.DeleteInvoice(ctx, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.resyncReports(ctx, invoice.Appointment)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceDeletedSuccess, invoice)
}

func (ctrl *InvoiceController) updateRequest(w http.ResponseWriter, r *http.Request) (*requests.UpdateInvoice, bool) {
	requester, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return nil, false
	}

	request := new(requests.UpdateInvoice)
	if err := decodeBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return nil, false
	}
	request.UpdatedBy = requester.UserID
	return request, true
}

// resyncReports keeps the appointment report in line with an invoice
// mutation. Failures are logged only; the outbox worker repairs them.
func (ctrl *InvoiceController) resyncReports(ctx context.Context, appointmentID string) {
	if appointmentID == "" {
		return
	}
	_, err := ctrl.ReportUsecase.Sync(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Warn("InvoiceController report resync failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}
}

func invoiceFilterFromQuery(r *http.Request) (*requests.InvoiceFilter, error) {
	query := r.URL.Query()
	start, err := queryTime(r, constvars.QueryStart)
	if err != nil {
		return nil, err
	}
	end, err := queryTime(r, constvars.QueryEnd)
	if err != nil {
		return nil, err
	}
	page, err := queryInt(r, constvars.QueryPage, 1)
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, constvars.QueryLimit, constvars.AppDefaultPageSize)
	if err != nil {
		return nil, err
	}

	return &requests.InvoiceFilter{
		Patient:     query.Get(constvars.QueryPatient),
		Doctor:      query.Get(constvars.QueryDoctor),
		Appointment: query.Get(constvars.QueryAppointment),
		Status:      query.Get(constvars.QueryStatus),
		Q:           query.Get(constvars.QueryQ),
		Start:       start,
		End:         end,
		Page:        page,
		Limit:       limit,
	}, nil
}
