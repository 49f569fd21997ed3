package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt(at time.Time) {
	m.CreatedAt = at
	m.UpdatedAt = at
}

func (m *TimeModel) SetUpdatedAt(at time.Time) {
	m.UpdatedAt = at
}
