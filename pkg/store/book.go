package store

// Book is a read-only projection of one catalog record as returned by the
// vector store. Score is a cosine similarity in [0,1], higher is better.
type Book struct {
	Identifier  string  `json:"identifier"`
	Title       string  `json:"title"`
	Authors     string  `json:"authors"` // comma-joined
	Category    string  `json:"category"`
	PublishYear string  `json:"publish_year"`
	Score       float32 `json:"score"`
	RichText    string  `json:"richtext,omitempty"`
}

// Facets holds the distinct metadata values currently present in the
// catalog. Used by the filter extractor to validate fuzzy captures.
type Facets struct {
	Categories []string `json:"categories"`
	Authors    []string `json:"authors"`
	Years      []string `json:"years"`
}

// FilterSet is a per-query structured filter. Empty fields are "no filter".
// Category and PublishYear are equality-matched; Title and Authors are
// substring-matched after retrieval.
type FilterSet struct {
	Title       string `json:"title,omitempty"`
	Authors     string `json:"authors,omitempty"`
	Category    string `json:"category,omitempty"`
	PublishYear string `json:"publish_year,omitempty"`
}

// IsEmpty reports whether no field is set.
func (f *FilterSet) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Title == "" && f.Authors == "" && f.Category == "" && f.PublishYear == ""
}

// Equality returns the fields the vector store can match natively.
func (f *FilterSet) Equality() map[string]string {
	if f == nil {
		return nil
	}
	eq := make(map[string]string)
	if f.Category != "" {
		eq["category"] = f.Category
	}
	if f.PublishYear != "" {
		eq["publish_year"] = f.PublishYear
	}
	if len(eq) == 0 {
		return nil
	}
	return eq
}

// Substring returns the fields that must be matched in-process by
// containment, keyed by metadata field name.
func (f *FilterSet) Substring() map[string]string {
	if f == nil {
		return nil
	}
	sub := make(map[string]string)
	if f.Title != "" {
		sub["title"] = f.Title
	}
	if f.Authors != "" {
		sub["authors"] = f.Authors
	}
	if len(sub) == 0 {
		return nil
	}
	return sub
}
