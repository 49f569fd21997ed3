package responses

type BulkDeleteAppointments struct {
	DeletedCount int `json:"deletedCount"`
}

type DeleteAppointmentsByPatient struct {
	PatientID    string `json:"patientId"`
	DeletedCount int    `json:"deletedCount"`
}
