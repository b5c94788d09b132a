package domain

import "fmt"

// Question is the single entry of a message's question section.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs an IN-class Question and validates its fields.
func NewQuestion(name string, rrtype RRType) (Question, error) {
	q := Question{
		Name:  name,
		Type:  rrtype,
		Class: RRClassIN,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally and semantically valid.
// Label-level problems are left to the name encoder.
func (q Question) Validate() error {
	if q.Name == "" {
		return NewError(KindEmptyLabel, "query name must not be empty")
	}
	if !q.Type.IsSupported() {
		return NewError(KindUnsupportedQuery, fmt.Sprintf("unsupported query type: %s", q.Type))
	}
	if !q.Class.IsValid() {
		return NewError(KindUnsupportedQuery, fmt.Sprintf("unsupported query class: %s", q.Class))
	}
	return nil
}
