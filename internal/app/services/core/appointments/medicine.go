package appointments

import (
	"clinic-service/internal/app/models"
	"errors"

	"github.com/tidwall/gjson"
)

var errMalformedResult = errors.New("result must be an object or a list of objects")

// medicineAliases maps each canonical medicine key to the spellings older
// clients send, in priority order.
var medicineAliases = []struct {
	key     string
	aliases []string
}{
	{"name", []string{"name", "Medicine", "MedicineName"}},
	{"type", []string{"type", "Type"}},
	{"dose", []string{"dose", "Dose"}},
	{"frequency", []string{"frequency", "Frequency", "Interval"}},
	{"route", []string{"route", "Rout", "Route", "rout"}},
	{"duration", []string{"duration", "Duration"}},
}

// NormalizeResult turns the raw prescription payload into visit records. The
// boolean is false when no result was sent, in which case the stored result is
// left alone.
func NormalizeResult(raw []byte) ([]models.VisitRecord, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	parsed := gjson.ParseBytes(raw)
	if parsed.Type == gjson.Null {
		return nil, false, nil
	}

	entries, ok := asObjects(parsed)
	if !ok {
		return nil, true, errMalformedResult
	}

	records := make([]models.VisitRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, visitRecord(entry))
	}
	return records, true, nil
}

func visitRecord(entry gjson.Result) models.VisitRecord {
	record := models.VisitRecord{
		InitialComplain: entry.Get("initialComplain").String(),
		MedicalHistory:  entry.Get("medicalHistory").String(),
		Diagnosys: models.Diagnosis{
			BP:        entry.Get("diagnosys.BP").String(),
			Diabetics: entry.Get("diagnosys.Diabetics").String(),
			SPO2:      entry.Get("diagnosys.SPO2").String(),
			Height:    entry.Get("diagnosys.Height").String(),
			Weight:    entry.Get("diagnosys.Weight").String(),
			Others:    entry.Get("diagnosys.Others").String(),
		},
		MedicineAdvice: []models.Medicine{},
		Advice: models.Advice{
			Types:  stringList(entry.Get("advice.types")),
			Custom: stringList(entry.Get("advice.custom")),
		},
	}

	medicines, _ := asObjects(entry.Get("medicineAdvice"))
	for _, medicine := range medicines {
		record.MedicineAdvice = append(record.MedicineAdvice, NormalizeMedicine(medicine))
	}
	return record
}

// NormalizeMedicine fills the canonical keys from their legacy spellings and
// keeps every other key the client sent.
func NormalizeMedicine(medicine gjson.Result) models.Medicine {
	normalized := models.Medicine{}
	medicine.ForEach(func(key, value gjson.Result) bool {
		normalized[key.String()] = value.String()
		return true
	})
	for _, field := range medicineAliases {
		normalized[field.key] = firstNonEmpty(medicine, field.aliases)
	}
	return normalized
}

func firstNonEmpty(medicine gjson.Result, aliases []string) string {
	for _, alias := range aliases {
		if value := medicine.Get(alias).String(); value != "" {
			return value
		}
	}
	return ""
}

// asObjects accepts a single object or a list and returns the objects in it.
func asObjects(value gjson.Result) ([]gjson.Result, bool) {
	switch {
	case !value.Exists() || value.Type == gjson.Null:
		return nil, true
	case value.IsObject():
		return []gjson.Result{value}, true
	case value.IsArray():
		objects := []gjson.Result{}
		for _, item := range value.Array() {
			if item.IsObject() {
				objects = append(objects, item)
			}
		}
		return objects, true
	}
	return nil, false
}

func stringList(value gjson.Result) []string {
	list := []string{}
	if value.IsArray() {
		for _, item := range value.Array() {
			list = append(list, item.String())
		}
	} else if value.Exists() && value.String() != "" {
		list = append(list, value.String())
	}
	return list
}
