package model

// Severity classifies how serious a layout violation is.
type Severity string

const (
	// SeverityError marks violations that make a layout unacceptable
	// (e.g. shapes outside the canvas).
	SeverityError Severity = "error"
	// SeverityWarning marks visible defects that still render
	// (e.g. overlapping shapes).
	SeverityWarning Severity = "warning"
	// SeverityInfo marks polish issues (alignment drift, uneven spacing).
	SeverityInfo Severity = "info"
)

// Violation is one detected deviation from a layout-quality rule.
type Violation struct {
	Rule     string   `json:"rule" bson:"rule"`
	Message  string   `json:"message" bson:"message"`
	Severity Severity `json:"severity" bson:"severity"`
	ShapeIDs []string `json:"shape_ids,omitempty" bson:"shape_ids,omitempty"`

	// Suggested carries an optional machine-applicable fix: field name
	// ("x", "y", "gap", ...) to corrected value.
	Suggested map[string]float64 `json:"suggested,omitempty" bson:"suggested,omitempty"`
}

// ConstraintResult aggregates the outcome of a validation pass.
type ConstraintResult struct {
	// IsValid is true when no error-severity violations were found.
	IsValid    bool        `json:"is_valid" bson:"is_valid"`
	Violations []Violation `json:"violations,omitempty" bson:"violations,omitempty"`
	// Score grades the layout from 0 (broken) to 100 (clean).
	Score float64 `json:"score" bson:"score"`
}

// Count returns the number of violations with the given severity.
func (r ConstraintResult) Count(sev Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == sev {
			n++
		}
	}
	return n
}
