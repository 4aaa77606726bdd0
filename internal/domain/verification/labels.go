package verification

const clinicName = "Universalis Dierenzorg"

var speciesLabels = map[string]string{
	"dog":     "Dog",
	"cat":     "Cat",
	"bird":    "Bird",
	"reptile": "Reptile",
	"exotic":  "Exotic Pet",
	"other":   "Other",
}

var treatmentLabels = map[string]string{
	"consultation": "Consultation",
	"surgery":      "Surgery",
	"dental":       "Dental Care",
	"emergency":    "Emergency",
	"checkup":      "Check-up",
	"grooming":     "Grooming",
	"other":        "Other",
}

var reportTypeLabels = map[string]string{
	"general_checkup": "General Checkup",
	"emergency":       "Emergency",
	"surgery":         "Surgery",
	"vaccination":     "Vaccination",
	"dental":          "Dental",
	"laboratory":      "Laboratory",
	"imaging":         "Imaging",
	"followup":        "Follow-up",
	"other":           "Other",
}

func label(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}
