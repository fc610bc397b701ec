package requests

// MatchNamesRequest requests a pairwise score for two company names
// (spec §6 match_corporate_names).
type MatchNamesRequest struct {
	Name1    string `json:"name1" binding:"required"`
	Name2    string `json:"name2" binding:"required"`
	Country1 string `json:"country1,omitempty"`
	Country2 string `json:"country2,omitempty"`
}

// FindDuplicatesRequest submits a batch of names for asynchronous
// duplicate detection (spec §4.6 find_duplicates), mirroring the
// teacher's BatchParseRequest shape and size cap.
type FindDuplicatesRequest struct {
	Names []string `json:"names" binding:"required,min=2,max=250000"`
}

// LegalFormRequest asks for the legal form recognized in a single name
// (spec §6 retrieve_legal_form / company_name_without_legal_form).
type LegalFormRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country,omitempty"`
}

// CleanNameRequest asks for the cleaned form of a single name (spec §6
// clean_company_name / clean_company_name_and_remove_legal_form).
type CleanNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ReviewDecisionRequest records a reviewer's approve/reject decision on
// a queued borderline pair.
type ReviewDecisionRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Approve    bool   `json:"approve"`
}
