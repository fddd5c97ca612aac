package model

// OutcomeKind classifies the result of a single extraction attempt.
type OutcomeKind string

const (
	// OutcomeWrite means the function's span may be written to its target file.
	OutcomeWrite OutcomeKind = "write"
	// OutcomeSkip means the target file already exists and must not be touched.
	OutcomeSkip OutcomeKind = "skip"
)

// SkipReason explains why an extraction was skipped.
type SkipReason string

// SkipAlreadyExists is the only skip reason: the target path is taken.
const SkipAlreadyExists SkipReason = "already-exists"

// ExtractionOutcome is the per-function result of extraction planning.
type ExtractionOutcome struct {
	Node   FunctionNode
	Kind   OutcomeKind
	Target Path
	Reason SkipReason
}

// Outcomes is the aggregated extraction result for one module, in document
// order. It is threaded through the pipeline as a value rather than shared
// mutable state.
type Outcomes []ExtractionOutcome

// AnySkip reports whether at least one extraction collided with an existing
// file. A single collision withholds the rewrite for the entire module:
// removing a function's text without a matching extracted file would
// silently destroy that function.
func (o Outcomes) AnySkip() bool {
	for _, outcome := range o {
		if outcome.Kind == OutcomeSkip {
			return true
		}
	}

	return false
}

// Writes returns the confirmed-write subset in document order.
func (o Outcomes) Writes() Outcomes {
	writes := make(Outcomes, 0, len(o))

	for _, outcome := range o {
		if outcome.Kind == OutcomeWrite {
			writes = append(writes, outcome)
		}
	}

	return writes
}
