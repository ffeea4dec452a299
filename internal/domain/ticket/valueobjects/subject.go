package valueobjects

import "fmt"

// Subject classifies what the customer needs help with.
type Subject string

const (
	SubjectHardwareFailure Subject = "hardware_failure"
	SubjectSoftwareIssue   Subject = "software_issue"
	SubjectMaintenance     Subject = "maintenance"
	SubjectInstallation    Subject = "installation"
	SubjectConsultation    Subject = "consultation"
	SubjectOther           Subject = "other"
)

var validSubjects = map[Subject]bool{
	SubjectHardwareFailure: true,
	SubjectSoftwareIssue:   true,
	SubjectMaintenance:     true,
	SubjectInstallation:    true,
	SubjectConsultation:    true,
	SubjectOther:           true,
}

func AllSubjects() []Subject {
	return []Subject{
		SubjectHardwareFailure,
		SubjectSoftwareIssue,
		SubjectMaintenance,
		SubjectInstallation,
		SubjectConsultation,
		SubjectOther,
	}
}

func (s Subject) String() string {
	return string(s)
}

func (s Subject) IsValid() bool {
	return validSubjects[s]
}

func NewSubject(s string) (Subject, error) {
	subject := Subject(s)
	if !subject.IsValid() {
		return "", fmt.Errorf("invalid subject: %s", s)
	}
	return subject, nil
}
