package routers

import (
	"bytes"
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/coretest"
	"clinic-service/internal/app/services/core/session"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "router-secret"

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.LoginUser)
	return response, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockAppointmentUsecase struct {
	contracts.AppointmentUsecase
	mock.Mock
}

func (m *MockAppointmentUsecase) CreateAppointment(ctx context.Context, requester *models.Session, request *requests.CreateAppointment) (*models.Appointment, error) {
	args := m.Called(ctx, requester, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) RenderAppointmentDocument(ctx context.Context, appointment *models.Appointment) (*responses.Document, error) {
	args := m.Called(ctx, appointment)
	document, _ := args.Get(0).(*responses.Document)
	return document, args.Error(1)
}

func (m *MockAppointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	return m.Called(ctx, appointmentID).Error(0)
}

func (m *MockAppointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

type MockInvoiceUsecase struct {
	contracts.InvoiceUsecase
	mock.Mock
}

func (m *MockInvoiceUsecase) SettleInvoice(ctx context.Context, invoiceID, requester string) (*models.Invoice, error) {
	args := m.Called(ctx, invoiceID, requester)
	invoice, _ := args.Get(0).(*models.Invoice)
	return invoice, args.Error(1)
}

type MockReportUsecase struct {
	contracts.ReportUsecase
	mock.Mock
}

func (m *MockReportUsecase) Sync(ctx context.Context, appointmentID string) (*models.Report, error) {
	args := m.Called(ctx, appointmentID)
	report, _ := args.Get(0).(*models.Report)
	return report, args.Error(1)
}

type routerFixture struct {
	router       *chi.Mux
	sessions     contracts.SessionService
	auth         *MockAuthUsecase
	appointments *MockAppointmentUsecase
	invoices     *MockInvoiceUsecase
	reports      *MockReportUsecase
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := zap.NewNop()
	redisRepo, _ := coretest.NewRedis(t)
	enforcer, err := casbin.NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	require.NoError(t, err)

	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:            "api",
			Version:                   "v1",
			MaxRequests:               1000,
			MaxTimeRequestsPerSeconds: 1,
			StrictRateLimitRequests:   5,
			StrictRateLimitWindowSec:  60,
			StrictRateLimitBlockSec:   60,
		},
		JWT: config.JWT{Secret: testSecret, ExpTimeInHour: 1},
	}

	f := &routerFixture{
		router:       chi.NewRouter(),
		sessions:     session.NewSessionService(redisRepo, logger),
		auth:         new(MockAuthUsecase),
		appointments: new(MockAppointmentUsecase),
		invoices:     new(MockInvoiceUsecase),
		reports:      new(MockReportUsecase),
	}
	mw := middlewares.NewMiddlewares(logger, f.sessions, enforcer, nil, internalConfig)
	SetupRoutes(f.router, internalConfig, mw,
		controllers.NewAuthController(logger, f.auth),
		controllers.NewAppointmentController(logger, f.appointments),
		controllers.NewInvoiceController(logger, f.invoices, f.reports),
		controllers.NewReportController(logger, f.reports),
	)
	return f
}

func (f *routerFixture) token(t *testing.T, role string) (string, string) {
	t.Helper()
	s := &models.Session{SessionID: utils.GenerateSessionID(), UserID: "user-" + role, Role: role}
	require.NoError(t, f.sessions.CreateSession(context.Background(), s, time.Hour))
	token, err := utils.GenerateSessionJWT(s.SessionID, testSecret, 1)
	require.NoError(t, err)
	return "Bearer " + token, s.SessionID
}

func (f *routerFixture) do(method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(constvars.HeaderAuthorization, auth)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestAuthRoutes(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("login returns the token", func(t *testing.T) {
		f.auth.On("Login", mock.Anything, mock.AnythingOfType("*requests.LoginUser")).
			Return(&responses.LoginUser{Token: "jwt", Role: constvars.RoleAdmin, Name: "Ada"}, nil).Once()

		rr := f.do(http.MethodPost, "/api/v1/auth/login", "", requests.LoginUser{Email: "ada@clinic.local", Password: "secret123", Role: constvars.RoleAdmin})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"token":"jwt"`)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("login with invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{not json"))
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("logout requires a session", func(t *testing.T) {
		rr := f.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("logout drops the caller session", func(t *testing.T) {
		bearer, sessionID := f.token(t, constvars.RoleDoctor)
		f.auth.On("Logout", mock.Anything, sessionID).Return(nil).Once()

		rr := f.do(http.MethodPost, "/api/v1/auth/logout", bearer, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	f.auth.AssertExpectations(t)
}

func TestAppointmentRoutes(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("create with download returns the html document", func(t *testing.T) {
		bearer, _ := f.token(t, constvars.RoleCompounder)
		appointment := &models.Appointment{ID: "appt-1"}
		f.appointments.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return s.Role == constvars.RoleCompounder
		}), mock.AnythingOfType("*requests.CreateAppointment")).Return(appointment, nil).Once()
		f.appointments.On("RenderAppointmentDocument", mock.Anything, appointment).Return(&responses.Document{
			FileName:    "appointment-appt-1.html",
			ContentType: constvars.MIMETextHTMLCharsetUTF8,
			Body:        []byte("<html></html>"),
		}, nil).Once()

		rr := f.do(http.MethodPost, "/api/v1/appointments?download=true", bearer, requests.CreateAppointment{Name: "Nimali"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMETextHTMLCharsetUTF8, rr.Header().Get(constvars.HeaderContentType))
		assert.Contains(t, rr.Header().Get(constvars.HeaderContentDisposition), "appointment-appt-1.html")
	})

	t.Run("doctor cannot delete", func(t *testing.T) {
		bearer, _ := f.token(t, constvars.RoleDoctor)
		rr := f.do(http.MethodDelete, "/api/v1/appointments/appt-1", bearer, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		f.appointments.AssertNotCalled(t, "DeleteAppointment", mock.Anything, "appt-1")
	})

	t.Run("not found surfaces as 404", func(t *testing.T) {
		bearer, _ := f.token(t, constvars.RolePatient)
		f.appointments.On("FindByID", mock.Anything, "missing").Return(nil, exceptions.ErrAppointmentNotFound(nil, "missing")).Once()

		rr := f.do(http.MethodGet, "/api/v1/appointments/missing", bearer, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	f.appointments.AssertExpectations(t)
}

func TestInvoiceRoutes_SettleResyncsReport(t *testing.T) {
	f := newRouterFixture(t)
	bearer, _ := f.token(t, constvars.RoleAdmin)

	f.invoices.On("SettleInvoice", mock.Anything, "inv-1", "user-Admin").
		Return(&models.Invoice{ID: "inv-1", Appointment: "appt-9", Status: constvars.InvoiceStatusPaid}, nil).Once()
	f.reports.On("Sync", mock.Anything, "appt-9").Return(&models.Report{AppointmentID: "appt-9"}, nil).Once()

	rr := f.do(http.MethodPost, "/api/v1/invoices/inv-1/settle", bearer, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.invoices.AssertExpectations(t)
	f.reports.AssertExpectations(t)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	rr := f.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
