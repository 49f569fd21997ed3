package harmonizer

import (
	"clinic-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func existingWith(status, paymentStatus string) *models.Appointment {
	return &models.Appointment{Status: status, PaymentStatus: paymentStatus}
}

func TestHarmonize_Create(t *testing.T) {
	cases := []struct {
		name  string
		input Input
		want  Decision
	}{
		{"paid defaults to accepted", Input{PaymentStatus: "Paid"}, Decision{"Accepted", "Paid"}},
		{"nothing supplied", Input{}, Decision{"Pending", "Pending"}},
		{"due defaults to pending", Input{PaymentStatus: "Due"}, Decision{"Pending", "Due"}},
		{"completed without payment is downgraded", Input{Status: "Completed", PaymentStatus: "Pending"}, Decision{"Accepted", "Due"}},
		{"completed with legacy accepted is downgraded", Input{Status: "Completed", PaymentStatus: "Accepted"}, Decision{"Accepted", "Due"}},
		{"completed and paid is kept", Input{Status: "Completed", PaymentStatus: "Paid"}, Decision{"Completed", "Paid"}},
		{"explicit rejected passes through", Input{Status: "Rejected"}, Decision{"Rejected", "Pending"}},
		{"unknown values are ignored", Input{Status: "Done", PaymentStatus: "Settled"}, Decision{"Pending", "Pending"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Harmonize(tc.input, nil, ContextCreate))
		})
	}
}

func TestHarmonize_PrescriptionSave(t *testing.T) {
	cases := []struct {
		name     string
		input    Input
		existing *models.Appointment
		want     Decision
	}{
		{"print with paid existing completes", Input{Print: true}, existingWith("Accepted", "Paid"), Decision{"Completed", "Paid"}},
		{"printAndSave with legacy accepted completes", Input{PrintAndSave: true}, existingWith("Accepted", "Accepted"), Decision{"Completed", "Paid"}},
		{"completed with incoming paid", Input{Status: "Completed", PaymentStatus: "Paid"}, existingWith("Pending", "Pending"), Decision{"Completed", "Paid"}},
		{"completing while unpaid", Input{Status: "Completed"}, existingWith("Accepted", "Due"), Decision{"Accepted", "Pending"}},
		{"print while unpaid", Input{Print: true}, existingWith("Pending", "Pending"), Decision{"Accepted", "Pending"}},
		{"payment without status", Input{PaymentStatus: "Paid"}, existingWith("Pending", "Pending"), Decision{"Accepted", "Paid"}},
		{"plain save keeps existing", Input{}, existingWith("Accepted", "Due"), Decision{"Accepted", "Due"}},
		{"plain save keeps completed paid", Input{}, existingWith("Completed", "Paid"), Decision{"Completed", "Paid"}},
		{"reopened payment on completed visit", Input{PaymentStatus: "Pending"}, existingWith("Completed", "Paid"), Decision{"Accepted", "Pending"}},
		{"completed visit marked due", Input{PaymentStatus: "Due"}, existingWith("Completed", "Accepted"), Decision{"Accepted", "Due"}},
		{"explicit status override", Input{Status: "Rejected"}, existingWith("Accepted", "Due"), Decision{"Rejected", "Due"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Harmonize(tc.input, tc.existing, ContextPrescriptionSave))
		})
	}
}

func TestHarmonize_StatusUpdate(t *testing.T) {
	cases := []struct {
		name     string
		input    Input
		existing *models.Appointment
		want     Decision
	}{
		{"completed with existing due", Input{Status: "Completed"}, existingWith("Accepted", "Due"), Decision{"Accepted", "Due"}},
		{"completed with existing paid", Input{Status: "Completed"}, existingWith("Accepted", "Paid"), Decision{"Completed", "Paid"}},
		{"completed with existing legacy accepted", Input{Status: "Completed"}, existingWith("Accepted", "Accepted"), Decision{"Completed", "Paid"}},
		{"completed keeps caller payment when unpaid", Input{Status: "Completed", PaymentStatus: "Pending"}, existingWith("Accepted", "Due"), Decision{"Accepted", "Pending"}},
		{"completed with incoming paid", Input{Status: "Completed", PaymentStatus: "Paid"}, existingWith("Pending", "Pending"), Decision{"Completed", "Paid"}},
		{"payment change defaults to accepted", Input{PaymentStatus: "Paid"}, existingWith("Pending", "Pending"), Decision{"Accepted", "Paid"}},
		{"due payment change defaults to accepted", Input{PaymentStatus: "Due"}, existingWith("Pending", "Pending"), Decision{"Accepted", "Due"}},
		{"completed stays completed while paid", Input{PaymentStatus: "Paid"}, existingWith("Completed", "Paid"), Decision{"Completed", "Paid"}},
		{"completed loses completion when unpaid", Input{PaymentStatus: "Due"}, existingWith("Completed", "Paid"), Decision{"Accepted", "Due"}},
		{"rejected passes through", Input{Status: "Rejected"}, existingWith("Pending", "Pending"), Decision{"Rejected", "Pending"}},
		{"empty update keeps existing", Input{}, existingWith("Accepted", "Due"), Decision{"Accepted", "Due"}},
		{"nil existing", Input{Status: "Completed"}, nil, Decision{"Accepted", "Due"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Harmonize(tc.input, tc.existing, ContextStatusUpdate))
		})
	}
}

func TestHarmonize_NeverCompletedWhileUnpaid(t *testing.T) {
	statuses := []string{"", "Pending", "Accepted", "Rejected", "Completed"}
	payments := []string{"", "Pending", "Due", "Accepted", "Paid"}
	contexts := []Context{ContextCreate, ContextPrescriptionSave, ContextStatusUpdate}

	for _, hctx := range contexts {
		for _, status := range statuses {
			for _, payment := range payments {
				for _, existingPayment := range payments {
					for _, print := range []bool{false, true} {
						input := Input{Status: status, PaymentStatus: payment, Print: print}
						got := Harmonize(input, existingWith("Completed", existingPayment), hctx)
						if got.Status == "Completed" {
							assert.True(t, IsPaidEquivalent(got.PaymentStatus), "context %s input %+v", hctx, input)
						}
						assert.True(t, IsValidStatus(got.Status))
						assert.True(t, IsValidPaymentStatus(got.PaymentStatus))
					}
				}
			}
		}
	}
}

func TestIsPaidEquivalent(t *testing.T) {
	assert.True(t, IsPaidEquivalent("Paid"))
	assert.True(t, IsPaidEquivalent("Accepted"))
	assert.False(t, IsPaidEquivalent("Due"))
	assert.False(t, IsPaidEquivalent("Pending"))
	assert.False(t, IsPaidEquivalent(""))
}
