package domain

import "errors"

// Sentinel errors for the analysis and recommendation engine. Callers match
// with errors.Is; constructors wrap these with context via fmt.Errorf.
var (
	// Corpus validation.
	ErrStudyMissingID          = errors.New("study is missing an ID")
	ErrInvalidInterventionType = errors.New("invalid intervention type")
	ErrInvalidStudyType        = errors.New("invalid study type")
	ErrRiskBiasOutOfRange      = errors.New("risk of bias score out of range")
	ErrDuplicateStudyID        = errors.New("duplicate study ID")
	ErrEmptyCorpus             = errors.New("research corpus is empty")

	// Engine inputs.
	ErrNilResponses    = errors.New("survey responses are nil")
	ErrNilProfile      = errors.New("user profile is nil")
	ErrInvalidCategory = errors.New("invalid recommendation category")

	// Storage.
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrFeedbackNotFound = errors.New("feedback not found")

	// Configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)
