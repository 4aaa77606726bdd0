package medreports

import "time"

type ReportType string

const (
	TypeGeneralCheckup ReportType = "general_checkup"
	TypeEmergency      ReportType = "emergency"
	TypeSurgery        ReportType = "surgery"
	TypeVaccination    ReportType = "vaccination"
	TypeDental         ReportType = "dental"
	TypeLaboratory     ReportType = "laboratory"
	TypeImaging        ReportType = "imaging"
	TypeFollowUp       ReportType = "followup"
	TypeOther          ReportType = "other"
)

const ReportTypeValues = "general_checkup|emergency|surgery|vaccination|dental|laboratory|imaging|followup|other"

func (t ReportType) Valid() bool {
	switch t {
	case TypeGeneralCheckup, TypeEmergency, TypeSurgery, TypeVaccination, TypeDental,
		TypeLaboratory, TypeImaging, TypeFollowUp, TypeOther:
		return true
	}
	return false
}

// MedReport es una consulta clínica ligada a un animal.
type MedReport struct {
	ID       string
	AnimalID string

	ReportType    ReportType
	Diagnosis     string
	Symptoms      string
	Treatment     string
	Prescriptions string
	Veterinarian  string

	Price        *float64
	FollowUpDate *time.Time
	Notes        string

	CreatedBy string // user id del admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cost devuelve Price o 0.
func (r MedReport) Cost() float64 {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}
