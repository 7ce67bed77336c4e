package storage

import "github.com/Varun5711/wecare/internal/models"

// SeedDoctors are the doctors every fresh sandbox starts with. Nephrology is left
// empty on purpose so clients can exercise the empty-speciality view.
var SeedDoctors = []models.DoctorSummary{
	{ID: "doc-gp-1", Name: "Dr. Meera Nair", Email: "meera.nair@wecare.test", Speciality: "generalPhysician"},
	{ID: "doc-gp-2", Name: "Dr. Arjun Rao", Email: "arjun.rao@wecare.test", Speciality: "generalPhysician"},
	{ID: "doc-card-1", Name: "Dr. Sarah Thomas", Email: "sarah.thomas@wecare.test", Speciality: "cardiology"},
	{ID: "doc-card-2", Name: "Dr. Vikram Shah", Email: "vikram.shah@wecare.test", Speciality: "cardiology"},
	{ID: "doc-neuro-1", Name: "Dr. Priya Menon", Email: "priya.menon@wecare.test", Speciality: "neurology"},
	{ID: "doc-ortho-1", Name: "Dr. Rahul Verma", Email: "rahul.verma@wecare.test", Speciality: "orthopedics"},
	{ID: "doc-ped-1", Name: "Dr. Anita George", Email: "anita.george@wecare.test", Speciality: "pediatrics"},
	{ID: "doc-gyn-1", Name: "Dr. Kavya Iyer", Email: "kavya.iyer@wecare.test", Speciality: "gynecology"},
	{ID: "doc-onc-1", Name: "Dr. Thomas Mathew", Email: "thomas.mathew@wecare.test", Speciality: "oncology"},
	{ID: "doc-gastro-1", Name: "Dr. Farah Khan", Email: "farah.khan@wecare.test", Speciality: "gastroenterology"},
	{ID: "doc-uro-1", Name: "Dr. Sanjay Pillai", Email: "sanjay.pillai@wecare.test", Speciality: "urology"},
	{ID: "doc-pulmo-1", Name: "Dr. Leena Das", Email: "leena.das@wecare.test", Speciality: "pulmonology"},
}

func Seed(s Storage) error {
	for i := range SeedDoctors {
		if err := s.SaveDoctor(&SeedDoctors[i]); err != nil {
			return err
		}
	}
	return nil
}
