package models

// PersonalInfo is the candidate snapshot embedded in a comparison result.
type PersonalInfo struct {
	FullName          string   `json:"fullName"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	CurrentCompany    string   `json:"currentCompany,omitempty"`
	Location          string   `json:"location,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	SalaryExpectation string   `json:"salaryExpectation,omitempty"`
}

// Applicant is one externally scored candidate. The misspelled
// `matchPrecentage` key is the backend's wire contract, so it stays.
type Applicant struct {
	PersonalInfo          PersonalInfo `json:"personalInfo"`
	MatchPercentage       int          `json:"matchPrecentage"`
	MatchPercentageReason string       `json:"matchPercentageReason"`
	MatchLabel            string       `json:"matchLabel"`
}

type CompareResponse struct {
	Applicants []Applicant `json:"applicants"`
}

type CompareRequest struct {
	ApplicationIDs    []int `json:"applicationIds"`
	ApplicationTypeID int   `json:"applicationTypeId"`
}

// ComparisonSummary is the aggregate the dashboard shows above the ranked
// list. Scoring itself is external; this is display math only.
type ComparisonSummary struct {
	TotalCandidates int     `json:"totalCandidates"`
	AverageScore    float64 `json:"averageScore"`
	TopCandidate    string  `json:"topCandidate"`
}
