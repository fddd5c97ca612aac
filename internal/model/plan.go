package model

// RewritePlan is the confirmed-write subset of function spans sorted
// descending by start offset, plus the loader block to append. It is only
// constructed when the outcome list contains zero skips; the spans refer to
// the original immutable text.
type RewritePlan struct {
	Spans  []Span
	Loader string
}
