//nolint:revive // types is a standard Go package name pattern
package types

// ResumeData is the structured form of a resume as returned by the parse-resume endpoint
// and stored in resume documents.
type ResumeData struct {
	PersonalInfo PersonalInfo     `json:"personalInfo"`
	Profile      string           `json:"profile"`
	Experience   []ExperienceItem `json:"experience"`
	Education    []EducationItem  `json:"education"`
	Websites     []LinkItem       `json:"websites"`
}

// PersonalInfo holds the contact block of a resume
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Photo    string `json:"photo"`
}

// ExperienceItem is one position held
type ExperienceItem struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description []string `json:"description"`
}

// EducationItem is one degree or course of study
type EducationItem struct {
	Degree    string `json:"degree"`
	School    string `json:"school"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
