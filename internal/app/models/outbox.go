package models

// OutboxJob is a best-effort side effect that failed inline and waits for the
// repair worker to replay it.
type OutboxJob struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	Attempts  int    `json:"attempts"`
	LastError string `json:"lastError,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
}
