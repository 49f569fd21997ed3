// Package coretest holds in-memory implementations of the repository contracts
// for usecase tests.
package coretest

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInjected = errors.New("injected failure")

func newID() string {
	return primitive.NewObjectID().Hex()
}

type AppointmentRepository struct {
	mu    sync.Mutex
	items map[string]models.Appointment
	order []string

	FailUpdate     bool
	FailAddInvoice bool
	// RejectMalformedIDs makes FindByID fail on non-hex ids like the mongo repository.
	RejectMalformedIDs bool
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{items: map[string]models.Appointment{}}
}

func (r *AppointmentRepository) CreateAppointment(_ context.Context, appointment *models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := appointment.ID
	if id == "" {
		id = newID()
	}
	stored := *appointment
	stored.ID = id
	stored.Invoices = append([]string{}, appointment.Invoices...)
	r.items[id] = stored
	r.order = append(r.order, id)
	return id, nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.RejectMalformedIDs && !primitive.IsValidObjectID(appointmentID) {
		return nil, exceptions.ErrMongoDBNotObjectID(nil)
	}
	appointment, ok := r.items[appointmentID]
	if !ok {
		return nil, nil
	}
	appointment.Invoices = append([]string{}, appointment.Invoices...)
	return &appointment, nil
}

func (r *AppointmentRepository) FindAll(_ context.Context) ([]models.Appointment, error) {
	return r.filter(func(models.Appointment) bool { return true }), nil
}

func (r *AppointmentRepository) FindByPatientID(_ context.Context, patientID string) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *AppointmentRepository) Search(_ context.Context, name, phone string) ([]models.Appointment, error) {
	var pattern *regexp.Regexp
	if name != "" {
		pattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(name))
	}
	return r.filter(func(a models.Appointment) bool {
		if pattern != nil && !pattern.MatchString(a.Name) {
			return false
		}
		return phone == "" || a.Phone == phone
	}), nil
}

func (r *AppointmentRepository) FindWithoutInvoices(_ context.Context, start, end *time.Time, doctorID string) ([]models.Appointment, error) {
	lower, upper := utils.AppointmentDateBounds(start, end)
	return r.filter(func(a models.Appointment) bool {
		if len(a.Invoices) > 0 {
			return false
		}
		if doctorID != "" && a.DoctorID != doctorID {
			return false
		}
		if lower != "" && a.AppointmentDate < lower {
			return false
		}
		return upper == "" || a.AppointmentDate <= upper
	}), nil
}

func (r *AppointmentRepository) UpdateAppointment(_ context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpdate {
		return ErrInjected
	}
	stored := *appointment
	stored.Invoices = append([]string{}, appointment.Invoices...)
	r.items[appointment.ID] = stored
	return nil
}

func (r *AppointmentRepository) AddInvoice(_ context.Context, appointmentID, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailAddInvoice {
		return ErrInjected
	}
	appointment, ok := r.items[appointmentID]
	if !ok {
		return nil
	}
	if !appointment.HasInvoice(invoiceID) {
		appointment.Invoices = append(appointment.Invoices, invoiceID)
	}
	r.items[appointmentID] = appointment
	return nil
}

func (r *AppointmentRepository) RemoveInvoice(_ context.Context, appointmentID, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.items[appointmentID]
	if !ok {
		return nil
	}
	kept := appointment.Invoices[:0:0]
	for _, id := range appointment.Invoices {
		if id != invoiceID {
			kept = append(kept, id)
		}
	}
	appointment.Invoices = kept
	r.items[appointmentID] = appointment
	return nil
}

func (r *AppointmentRepository) DeleteByID(_ context.Context, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, appointmentID)
	return nil
}

func (r *AppointmentRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *AppointmentRepository) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Appointment{}
	for _, id := range r.order {
		appointment, ok := r.items[id]
		if ok && keep(appointment) {
			appointment.Invoices = append([]string{}, appointment.Invoices...)
			result = append(result, appointment)
		}
	}
	return result
}

type InvoiceRepository struct {
	mu    sync.Mutex
	items map[string]models.Invoice
	order []string

	// FailUpdateFor makes UpdateInvoice fail for the listed invoice ids.
	FailUpdateFor map[string]bool
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{items: map[string]models.Invoice{}, FailUpdateFor: map[string]bool{}}
}

func (r *InvoiceRepository) CreateInvoice(_ context.Context, invoice *models.Invoice) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := invoice.ID
	if id == "" {
		id = newID()
	}
	stored := cloneInvoice(*invoice)
	stored.ID = id
	r.items[id] = stored
	r.order = append(r.order, id)
	return id, nil
}

func (r *InvoiceRepository) FindByID(_ context.Context, invoiceID string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice, ok := r.items[invoiceID]
	if !ok {
		return nil, nil
	}
	invoice = cloneInvoice(invoice)
	return &invoice, nil
}

func (r *InvoiceRepository) FindByIDs(_ context.Context, invoiceIDs []string) ([]models.Invoice, error) {
	wanted := map[string]bool{}
	for _, id := range invoiceIDs {
		wanted[id] = true
	}
	return r.filter(func(inv models.Invoice) bool { return wanted[inv.ID] }), nil
}

func (r *InvoiceRepository) FindByAppointmentID(_ context.Context, appointmentID string) ([]models.Invoice, error) {
	return r.filter(func(inv models.Invoice) bool { return inv.Appointment == appointmentID }), nil
}

func (r *InvoiceRepository) FindByFilter(_ context.Context, filter *requests.InvoiceFilter) ([]models.Invoice, int64, error) {
	var pattern *regexp.Regexp
	if filter.Q != "" {
		pattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(filter.Q))
	}
	matched := r.filter(func(inv models.Invoice) bool {
		switch {
		case filter.Patient != "" && inv.Patient != filter.Patient,
			filter.Doctor != "" && inv.Doctor != filter.Doctor,
			filter.Appointment != "" && inv.Appointment != filter.Appointment,
			filter.Status != "" && inv.Status != filter.Status,
			pattern != nil && !pattern.MatchString(inv.InvoiceNumber):
			return false
		}
		return inRange(inv.IssuedAt, filter.Start, filter.End)
	})
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].IssuedAt.After(matched[j].IssuedAt) })

	total := int64(len(matched))
	from := (filter.Page - 1) * filter.Limit
	if from > len(matched) {
		from = len(matched)
	}
	to := from + filter.Limit
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], total, nil
}

func (r *InvoiceRepository) FindIssuedBetween(_ context.Context, start, end *time.Time, doctorID string) ([]models.Invoice, error) {
	return r.filter(func(inv models.Invoice) bool {
		if doctorID != "" && inv.Doctor != doctorID {
			return false
		}
		return inRange(inv.IssuedAt, start, end)
	}), nil
}

func (r *InvoiceRepository) Search(_ context.Context, query string, patientIDs []string) ([]models.Invoice, error) {
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	patients := map[string]bool{}
	for _, id := range patientIDs {
		patients[id] = true
	}
	return r.filter(func(inv models.Invoice) bool {
		return pattern.MatchString(inv.InvoiceNumber) || patients[inv.Patient]
	}), nil
}

func (r *InvoiceRepository) UpdateInvoice(_ context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpdateFor[invoice.ID] {
		return ErrInjected
	}
	r.items[invoice.ID] = cloneInvoice(*invoice)
	return nil
}

func (r *InvoiceRepository) DeleteByID(_ context.Context, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, invoiceID)
	return nil
}

func (r *InvoiceRepository) DeleteByAppointmentID(_ context.Context, appointmentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, invoice := range r.items {
		if invoice.Appointment == appointmentID {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *InvoiceRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *InvoiceRepository) filter(keep func(models.Invoice) bool) []models.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Invoice{}
	for _, id := range r.order {
		invoice, ok := r.items[id]
		if ok && keep(invoice) {
			result = append(result, cloneInvoice(invoice))
		}
	}
	return result
}

func cloneInvoice(invoice models.Invoice) models.Invoice {
	invoice.Items = append([]models.InvoiceItem{}, invoice.Items...)
	invoice.Payments = append([]models.Payment{}, invoice.Payments...)
	return invoice
}

func inRange(at time.Time, start, end *time.Time) bool {
	if start != nil && at.Before(*start) {
		return false
	}
	return end == nil || !at.After(*end)
}

type ReportRepository struct {
	mu    sync.Mutex
	items map[string]models.Report

	FailUpsert bool
	Upserts    int
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{items: map[string]models.Report{}}
}

func (r *ReportRepository) UpsertByAppointmentID(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpsert {
		return ErrInjected
	}
	r.Upserts++
	stored := *report
	if existing, ok := r.items[report.AppointmentID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = newID()
	}
	r.items[report.AppointmentID] = stored
	return nil
}

func (r *ReportRepository) FindByAppointmentID(_ context.Context, appointmentID string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.items[appointmentID]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

func (r *ReportRepository) DeleteByAppointmentID(_ context.Context, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, appointmentID)
	return nil
}

func (r *ReportRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type UserRepository struct {
	mu    sync.Mutex
	items map[string]models.User
	order []string
}

func NewUserRepository(users ...models.User) *UserRepository {
	r := &UserRepository{items: map[string]models.User{}}
	for i := range users {
		_, _ = r.CreateUser(context.Background(), &users[i])
	}
	return r
}

func (r *UserRepository) CreateUser(_ context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := user.ID
	if id == "" {
		id = newID()
		user.ID = id
	}
	r.items[id] = *user
	r.order = append(r.order, id)
	return id, nil
}

func (r *UserRepository) FindByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) FindByEmailAndRole(_ context.Context, email, role string) (*models.User, error) {
	users := r.filter(func(u models.User) bool { return strings.EqualFold(u.Email, email) && u.Role == role })
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *UserRepository) FindDoctorsByDepartment(_ context.Context, department string) ([]models.User, error) {
	return r.filter(func(u models.User) bool {
		return u.Role == constvars.RoleDoctor && u.DoctorDepartment == department
	}), nil
}

func (r *UserRepository) FindPatientByNICOrEmail(_ context.Context, nic, email string) (*models.User, error) {
	users := r.filter(func(u models.User) bool {
		if u.Role != constvars.RolePatient {
			return false
		}
		return (nic != "" && u.NIC == nic) || (email != "" && u.Email == email)
	})
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *UserRepository) FindPatientIDsMatching(_ context.Context, query string) ([]string, error) {
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	users := r.filter(func(u models.User) bool {
		return pattern.MatchString(u.FirstName) || pattern.MatchString(u.LastName) ||
			pattern.MatchString(u.Phone) || pattern.MatchString(u.Email)
	})
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (r *UserRepository) Patients() []models.User {
	return r.filter(func(u models.User) bool { return u.Role == constvars.RolePatient })
}

func (r *UserRepository) filter(keep func(models.User) bool) []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.User{}
	for _, id := range r.order {
		if user, ok := r.items[id]; ok && keep(user) {
			result = append(result, user)
		}
	}
	return result
}
