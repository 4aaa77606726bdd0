package treatments

import "time"

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeSurgery      Type = "surgery"
	TypeDental       Type = "dental"
	TypeEmergency    Type = "emergency"
	TypeCheckup      Type = "checkup"
	TypeGrooming     Type = "grooming"
	TypeOther        Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeConsultation, TypeSurgery, TypeDental, TypeEmergency, TypeCheckup, TypeGrooming, TypeOther:
		return true
	}
	return false
}

type Treatment struct {
	ID       string
	AnimalID string

	Type         Type
	Description  string
	Date         time.Time
	Veterinarian string
	Cost         float64
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
