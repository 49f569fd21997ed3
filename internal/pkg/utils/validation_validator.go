package utils

import (
	"clinic-service/internal/pkg/constvars"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("clinic_role", validateClinicRole)
	validate.RegisterValidation("payment_status", validatePaymentStatus)
	validate.RegisterValidation("appointment_state", validateAppointmentState)
	validate.RegisterValidation("invoice_status", validateInvoiceStatus)
	validate.RegisterValidation("non_negative", validateNonNegative)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClinicRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.RoleAdmin, constvars.RoleDoctor, constvars.RoleCompounder, constvars.RolePatient:
		return true
	}
	return false
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.PaymentStatusPending, constvars.PaymentStatusDue, constvars.PaymentStatusAccepted, constvars.PaymentStatusPaid:
		return true
	}
	return false
}

func validateAppointmentState(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.AppointmentStatusPending, constvars.AppointmentStatusAccepted, constvars.AppointmentStatusRejected, constvars.AppointmentStatusCompleted:
		return true
	}
	return false
}

func validateInvoiceStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.InvoiceStatusUnpaid, constvars.InvoiceStatusPartial, constvars.InvoiceStatusPaid, constvars.InvoiceStatusCancelled:
		return true
	}
	return false
}

func validateNonNegative(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() >= 0
	}
	return true
}
