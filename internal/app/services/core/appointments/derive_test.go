package appointments

import (
	"clinic-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDOBAndAge(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	dob := DeriveDOB(30, now)
	assert.Equal(t, time.Date(1996, 3, 15, 0, 0, 0, 0, time.UTC), dob)
	assert.Equal(t, 30, DeriveAge(dob, now))

	assert.Equal(t, 29, DeriveAge(time.Date(1996, 3, 16, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, DeriveAge(now.Add(48*time.Hour), now))
}

func TestSynthesizeNIC(t *testing.T) {
	now := time.UnixMilli(1773583200123)

	nic := SynthesizeNIC("+94 77 123 4567", now)
	assert.Len(t, nic, 13)
	assert.Equal(t, "1773583200123", nic)

	assert.Equal(t, "0001773583200", SynthesizeNIC("", time.UnixMilli(1773583200)))
}

func TestSynthesizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"John Smith", "0771234567", "john67@clinic.local"},
		{"  Ánne-Marie  O'Neil", "077-12", "nnemarie12@clinic.local"},
		{"", "0771234599", "patient99@clinic.local"},
		{"Bob", "7", "bob7@clinic.local"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SynthesizeEmail(tt.name, tt.phone, "clinic.local"))
		})
	}
}

func TestPatientNames(t *testing.T) {
	first, last := PatientNames("Nimal Perera Silva", "", "")
	assert.Equal(t, "Nimal", first)
	assert.Equal(t, "Perera Silva", last)

	first, last = PatientNames("Madonna", "", "")
	assert.Equal(t, "Madonna", first)
	assert.Empty(t, last)

	first, _ = PatientNames("", "walkin@clinic.local", "0771234567")
	assert.Equal(t, "walkin", first)

	first, _ = PatientNames("", "", "0771234567")
	assert.Equal(t, "Patient-4567", first)
}

func TestConsultationPrice(t *testing.T) {
	assert.Equal(t, models.MoneyFromUnits(100), ConsultationPrice(models.MoneyFromUnits(500)))
	assert.Equal(t, models.MoneyFromUnits(250), ConsultationPrice(models.MoneyFromUnits(1249)))
	assert.Equal(t, models.MoneyFromUnits(249), ConsultationPrice(models.MoneyFromUnits(1245)-1))
	assert.Zero(t, ConsultationPrice(0))
}
