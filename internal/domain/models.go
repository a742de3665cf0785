package domain

// Domain contains the request-scoped models shared by the fetch, view and app layers.

// Field is one labeled value of a rendered record.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Record is one item of a collection rendered as labeled fields.
type Record struct {
	Heading string  `json:"heading"`
	Fields  []Field `json:"fields"`
}

// Projection is a validated payload shaped for presentation. Collections fill
// Records/Total/Sequence; single-resource lookups fill Message.
type Projection struct {
	Records  []Record
	Total    int
	Sequence bool
	Message  string
}
