// Package documents renders the downloadable invoice and appointment summaries.
package documents

import (
	"clinic-service/internal/app/models"
	"fmt"
	"strings"
	"time"
)

const notAvailable = "N/A"

const documentHeadFormat = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width,initial-scale=1">
    <title>%s</title>
    <style>body{font-family:Arial,Helvetica,sans-serif;padding:20px}h1{margin-bottom:0}p{margin:4px 0}ul{padding-left:20px}</style>
  </head>
  <body>
`

const documentTail = `  </body>
</html>
`

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"`", "&#96;",
)

// EscapeHTML escapes & < > " ' and backticks.
func EscapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}

type InvoiceDocument struct {
	Invoice     *models.Invoice
	Patient     *models.User
	Doctor      *models.User
	Appointment *models.Appointment
}

func RenderInvoiceHTML(doc InvoiceDocument) []byte {
	invoice := doc.Invoice
	title := "Invoice " + invoice.InvoiceNumber

	var b strings.Builder
	fmt.Fprintf(&b, documentHeadFormat, EscapeHTML(title))
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", EscapeHTML(title))
	writeField(&b, "Patient", personName(doc.Patient))
	writeField(&b, "Email/Phone", personContact(doc.Patient))
	writeField(&b, "Doctor", personName(doc.Doctor))
	writeField(&b, "Date", invoiceDate(doc))
	writeItems(&b, invoice.Items)
	writeField(&b, "Subtotal", invoice.Subtotal.String())
	writeField(&b, "Tax", invoice.Tax.String())
	writeField(&b, "Discount", invoice.Discount.String())
	writeField(&b, "Total", invoice.Total.String())
	writeField(&b, "Payment Status", fallback(invoice.Status))
	b.WriteString(documentTail)
	return []byte(b.String())
}

// RenderAppointmentHTML summarises a freshly booked appointment. invoice may be nil
// when the booking invoice could not be created.
func RenderAppointmentHTML(appointment *models.Appointment, invoice *models.Invoice) []byte {
	title := "Appointment " + appointment.ID

	var b strings.Builder
	fmt.Fprintf(&b, documentHeadFormat, EscapeHTML(title))
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", EscapeHTML(title))
	writeField(&b, "Patient", fallback(appointment.Name))
	writeField(&b, "Email/Phone", fallback(firstNonEmpty(appointment.Email, appointment.Phone)))
	writeField(&b, "Doctor", fallback(strings.TrimSpace(appointment.Doctor.FirstName+" "+appointment.Doctor.LastName)))
	writeField(&b, "Department", fallback(appointment.Department))
	writeField(&b, "Date", fallback(appointment.AppointmentDate))
	writeField(&b, "Status", fallback(appointment.Status))
	if invoice != nil {
		writeField(&b, "Invoice", fallback(invoice.InvoiceNumber))
		writeItems(&b, invoice.Items)
		writeField(&b, "Subtotal", invoice.Subtotal.String())
		writeField(&b, "Tax", invoice.Tax.String())
		writeField(&b, "Discount", invoice.Discount.String())
		writeField(&b, "Total", invoice.Total.String())
	} else {
		writeField(&b, "Price", appointment.Price.String())
	}
	writeField(&b, "Payment Status", fallback(appointment.PaymentStatus))
	b.WriteString(documentTail)
	return []byte(b.String())
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    <p><strong>%s:</strong> %s</p>\n", label, EscapeHTML(value))
}

func writeItems(b *strings.Builder, items []models.InvoiceItem) {
	b.WriteString("    <h3>Items:</h3>\n    <ul>")
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s - %d x %s = %s</li>",
			EscapeHTML(item.Description),
			item.Quantity,
			EscapeHTML(item.UnitPrice.String()),
			EscapeHTML(item.Total.String()),
		)
	}
	b.WriteString("</ul>\n")
}

func personName(user *models.User) string {
	if user == nil {
		return notAvailable
	}
	if name := user.FullName(); name != "" {
		return name
	}
	return personContact(user)
}

func personContact(user *models.User) string {
	if user == nil {
		return notAvailable
	}
	return fallback(firstNonEmpty(user.Email, user.Phone))
}

func invoiceDate(doc InvoiceDocument) string {
	switch {
	case !doc.Invoice.IssuedAt.IsZero():
		return doc.Invoice.IssuedAt.Format(time.DateTime)
	case !doc.Invoice.CreatedAt.IsZero():
		return doc.Invoice.CreatedAt.Format(time.DateTime)
	case doc.Appointment != nil && doc.Appointment.AppointmentDate != "":
		return doc.Appointment.AppointmentDate
	}
	return "-"
}

func fallback(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
