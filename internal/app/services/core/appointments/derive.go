package appointments

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var priceFeeRatio = decimal.RequireFromString(constvars.PriceFeeRatio)

// DeriveDOB approximates a date of birth as today minus age years.
func DeriveDOB(age int, now time.Time) time.Time {
	return utils.StartOfDay(now).AddDate(-age, 0, 0)
}

func DeriveAge(dob, now time.Time) int {
	days := now.Sub(dob).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(math.Floor(days / constvars.DaysPerYear))
}

// SynthesizeNIC builds a placeholder identity number from the phone digits and
// the current unix millis. It is neither secret nor guaranteed unique.
func SynthesizeNIC(phone string, now time.Time) string {
	digits := utils.DigitsOnly(phone) + strconv.FormatInt(now.UnixMilli(), 10)
	if len(digits) > constvars.SynthesizedNICLength {
		return digits[len(digits)-constvars.SynthesizedNICLength:]
	}
	return strings.Repeat("0", constvars.SynthesizedNICLength-len(digits)) + digits
}

// SynthesizeEmail returns <first name><last two phone digits>@domain, with the
// first name reduced to lower case letters and digits.
func SynthesizeEmail(name, phone, domain string) string {
	first, _ := utils.SplitFullName(name)
	var local strings.Builder
	for _, r := range strings.ToLower(first) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			local.WriteRune(r)
		}
	}
	if local.Len() == 0 {
		local.WriteString(constvars.PatientEmailFallbackLocal)
	}
	digits := utils.DigitsOnly(phone)
	if len(digits) > 2 {
		digits = digits[len(digits)-2:]
	}
	return fmt.Sprintf("%s%s@%s", local.String(), digits, domain)
}

// PatientNames splits the booking name. Without a name the first name falls
// back to the email local part, then to a placeholder built from the phone.
func PatientNames(name, email, phone string) (string, string) {
	first, last := utils.SplitFullName(name)
	if first != "" {
		return first, last
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at], ""
	}
	digits := utils.DigitsOnly(phone)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return fmt.Sprintf(constvars.PatientNamePlaceholderFormat, digits), ""
}

// ConsultationPrice is the booking price, a fifth of the fee rounded to whole
// currency units.
func ConsultationPrice(fee models.Money) models.Money {
	return models.MoneyFromDecimal(fee.Decimal().Mul(priceFeeRatio).Round(0))
}
