package models

import (
	"strings"
	"time"
)

type User struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	FirstName        string     `json:"firstName" bson:"firstName"`
	LastName         string     `json:"lastName" bson:"lastName"`
	Email            string     `json:"email" bson:"email"`
	Phone            string     `json:"phone" bson:"phone"`
	NIC              string     `json:"nic,omitempty" bson:"nic,omitempty"`
	DOB              *time.Time `json:"dob,omitempty" bson:"dob,omitempty"`
	Gender           string     `json:"gender,omitempty" bson:"gender,omitempty"`
	Password         string     `json:"-" bson:"password"`
	Role             string     `json:"role" bson:"role"`
	DoctorDepartment string     `json:"doctorDepartment,omitempty" bson:"doctorDepartment,omitempty"`
	ConsultationFee  Money      `json:"consultationFee,omitempty" bson:"consultationFee,omitempty"`
	TimeModel        `bson:",inline"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
