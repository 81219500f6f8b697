package enrich

import (
	"fmt"
	"strings"
)

// ErrorKind classifies how an enrichment stage ended.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindMissingInput
	KindFetchFailure
	KindServiceUnavailable
	KindSummaryExtractionFailure
	KindSaveFailure
	KindTranslationFailure
	KindCategorizationFailure
	KindNoCategoryAssigned
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingInput:
		return "missing_input"
	case KindFetchFailure:
		return "fetch_failure"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindSummaryExtractionFailure:
		return "summary_extraction_failure"
	case KindSaveFailure:
		return "save_failure"
	case KindTranslationFailure:
		return "translation_failure"
	case KindCategorizationFailure:
		return "categorization_failure"
	case KindNoCategoryAssigned:
		return "no_category_assigned"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// SubReport records the outcome of a non-fatal stage (translation,
// categorization). Kind is KindNone on success.
type SubReport struct {
	Attempted bool
	Kind      ErrorKind
	Err       error
}

// OK reports whether the stage ran without error.
func (s SubReport) OK() bool {
	return s.Attempted && s.Kind == KindNone
}

// Report is the structured result of one pipeline run. Failure carries the
// kind that terminated the run early; KindNone means every stage was reached.
// Translation and categorization failures never terminate the run and are
// always reported through their SubReports.
type Report struct {
	URL     string
	Failure ErrorKind
	Err     error

	TitleSet           bool
	ReadingTimeMinutes *int
	SummarySaved       bool
	Categories         []string
	Translation        SubReport
	Categorization     SubReport
}

// Failed reports whether the run terminated before the final save.
func (r Report) Failed() bool {
	return r.Failure != KindNone
}

// Message renders the report for display at the admin boundary.
func (r Report) Message() string {
	switch r.Failure {
	case KindMissingInput:
		return "Error: no URL provided."
	case KindFetchFailure:
		return fmt.Sprintf("Error fetching URL: %v", r.Err)
	case KindServiceUnavailable:
		return "Error: completion API key not found. Title and reading time saved."
	case KindSummaryExtractionFailure:
		return "Error extracting summary. Other details saved."
	case KindSaveFailure:
		return fmt.Sprintf("Error saving article: %v", r.Err)
	}

	parts := []string{"Fetch, reading time, summary completed."}

	if r.Translation.OK() {
		parts = append(parts, "Translation completed.")
	} else {
		parts = append(parts, "Translation failed.")
	}

	switch r.Categorization.Kind {
	case KindNone:
		parts = append(parts, fmt.Sprintf("Categories set to: %s.", strings.Join(r.Categories, ", ")))
	case KindNoCategoryAssigned:
		parts = append(parts, "Warning: no valid category assigned.")
	default:
		parts = append(parts, fmt.Sprintf("Categorization failed: %v.", r.Categorization.Err))
	}

	return strings.Join(parts, " ")
}
