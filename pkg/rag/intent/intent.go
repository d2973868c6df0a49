package intent

// Intent is the classified purpose of one user utterance. Classification
// walks the variants in a fixed order; the categories overlap lexically,
// so the order is part of the contract.
type Intent string

const (
	Garbage     Intent = "GARBAGE"
	Stats       Intent = "STATS"
	Smalltalk   Intent = "SMALLTALK"
	LibraryInfo Intent = "LIBRARY_INFO"
	TitleSearch Intent = "TITLE_SEARCH"
	Followup    Intent = "FOLLOWUP"
	Search      Intent = "SEARCH"

	// Error is never produced by classification. It marks an answer
	// generated by the top-level recovery path.
	Error Intent = "ERROR"
)
