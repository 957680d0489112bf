package models

import (
	"strconv"

	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// QueryColumns is the enquiry export layout shared by the server and the dashboard.
func QueryColumns(f *records.TimestampFormatter) []records.Column[StudentQuery] {
	return []records.Column[StudentQuery]{
		{Header: "Date", Value: func(q StudentQuery) string { return f.Date(q.CreatedAt) }},
		records.FieldColumn[StudentQuery]("Name", "name"),
		records.FieldColumn[StudentQuery]("Phone", "phone"),
		records.FieldColumn[StudentQuery]("Email", "email"),
		records.FieldColumn[StudentQuery]("Institution", "current_institution"),
		records.FieldColumn[StudentQuery]("Course", "course"),
		records.FieldColumn[StudentQuery]("Message", "message"),
		records.FieldColumn[StudentQuery]("Status", records.FieldStatus),
	}
}

// ReportColumns is the consultant report export layout.
func ReportColumns(f *records.TimestampFormatter) []records.Column[ConsultantReport] {
	return []records.Column[ConsultantReport]{
		records.InstantColumn[ConsultantReport]("Date (IST)", records.FieldCreatedAt, f),
		records.FieldColumn[ConsultantReport]("Consultant", "consultant_name"),
		records.FieldColumn[ConsultantReport]("Student Name", "student_name"),
		records.FieldColumn[ConsultantReport]("Contact", "contact_number"),
		records.FieldColumn[ConsultantReport]("Institution", "institution_name"),
		records.FieldColumn[ConsultantReport]("Exam Preference", "competitive_exam_preference"),
		records.FieldColumn[ConsultantReport]("Career Interest", "career_interest"),
		records.FieldColumn[ConsultantReport]("College Interest", "college_interest"),
		records.FieldColumn[ConsultantReport]("Interest Scope", "interest_scope"),
		records.FieldColumn[ConsultantReport]("Remarks", "other_remarks"),
	}
}

// AdmissionColumns is the admissions export layout.
func AdmissionColumns(f *records.TimestampFormatter) []records.Column[Admission] {
	return []records.Column[Admission]{
		records.FieldColumn[Admission]("Admission Date", "admission_date"),
		records.FieldColumn[Admission]("Student Name", "student_name"),
		records.FieldColumn[Admission]("Course", "course"),
		records.FieldColumn[Admission]("College", "college"),
		records.FieldColumn[Admission]("Consultant", "consultant_name"),
		{Header: "Payout Amount", Value: func(a Admission) string {
			return strconv.FormatFloat(a.PayoutAmount, 'f', 2, 64)
		}},
		records.FieldColumn[Admission]("Payout Status", "payout_status"),
		records.InstantColumn[Admission]("Recorded (IST)", records.FieldCreatedAt, f),
	}
}

func CallColumns(f *records.TimestampFormatter) []records.Column[CallLog] {
	return []records.Column[CallLog]{
		records.InstantColumn[CallLog]("Date (IST)", records.FieldCreatedAt, f),
		records.FieldColumn[CallLog]("Consultant", "consultant_name"),
		records.FieldColumn[CallLog]("Call Type", "call_type"),
		records.FieldColumn[CallLog]("Student Name", "student_name"),
		records.FieldColumn[CallLog]("Contact", "contact_number"),
		records.FieldColumn[CallLog]("Remarks", "remarks"),
	}
}
