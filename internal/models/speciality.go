package models

type Speciality struct {
	Value       string
	Label       string
	Description string
}

// Specialities is the fixed catalogue shown on the home page and offered by the
// registration and booking forms.
var Specialities = []Speciality{
	{
		Value:       "generalPhysician",
		Label:       "General Physician",
		Description: "Comprehensive primary care for all ages, from routine check-ups to managing chronic conditions and preventive healthcare.",
	},
	{
		Value:       "cardiology",
		Label:       "Cardiology",
		Description: "Specialized care for heart and cardiovascular conditions including hypertension, heart disease, and arrhythmias.",
	},
	{
		Value:       "neurology",
		Label:       "Neurology",
		Description: "Expert diagnosis and treatment of disorders affecting the brain, spinal cord, and nervous system.",
	},
	{
		Value:       "orthopedics",
		Label:       "Orthopedics",
		Description: "Comprehensive care for musculoskeletal injuries, joint problems, and bone disorders.",
	},
	{
		Value:       "pediatrics",
		Label:       "Pediatrics",
		Description: "Specialized medical care for infants, children, and adolescents focusing on developmental needs.",
	},
	{
		Value:       "gynecology",
		Label:       "Gynecology",
		Description: "Women's health services including reproductive health, preventive screenings, and hormonal care.",
	},
	{
		Value:       "oncology",
		Label:       "Oncology",
		Description: "Comprehensive cancer care including diagnosis, treatment, and supportive therapies.",
	},
	{
		Value:       "gastroenterology",
		Label:       "Gastroenterology",
		Description: "Expert care for digestive system disorders including stomach, intestinal, and liver conditions.",
	},
	{
		Value:       "urology",
		Label:       "Urology",
		Description: "Specialized treatment for urinary tract issues and male reproductive system health.",
	},
	{
		Value:       "pulmonology",
		Label:       "Pulmonology",
		Description: "Focused care for respiratory conditions including asthma, COPD, and lung diseases.",
	},
	{
		Value:       "nephrology",
		Label:       "Nephrology",
		Description: "Expert management of kidney disorders, dialysis care, and hypertension related to renal function.",
	},
}

func LookupSpeciality(value string) (Speciality, bool) {
	for _, s := range Specialities {
		if s.Value == value {
			return s, true
		}
	}
	return Speciality{}, false
}
