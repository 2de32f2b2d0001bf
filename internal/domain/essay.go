package domain

// Essay is one discovered submission. Discovery derives the student label
// and word count from the source file; the flags are informational and do
// not exclude an essay from evaluation or ranking.
type Essay struct {
	// Label is the student name derived from the submission filename.
	Label string

	// Content is the full essay text.
	Content string

	// WordCount is the whitespace-delimited word count of Content.
	WordCount int

	// Disqualified marks essays over the contest word limit. Disqualified
	// essays are still scored and ranked; the flag is surfaced in reports
	// only. Excluding them would be a contest-policy change that has not
	// been made.
	Disqualified bool

	// DisqualificationReason explains the flag when Disqualified is set.
	DisqualificationReason string

	// NearDuplicateOf names an earlier submission this essay closely
	// resembles, or is empty. Informational, like Disqualified.
	NearDuplicateOf string
}
