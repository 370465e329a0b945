package domain

import "strings"

// MetadataField names one field of Metadata.
type MetadataField string

// Metadata fields in display order.
const (
	FieldFilename     MetadataField = "filename"
	FieldTitle        MetadataField = "title"
	FieldAuthor       MetadataField = "author"
	FieldSubject      MetadataField = "subject"
	FieldKeywords     MetadataField = "keywords"
	FieldCreator      MetadataField = "creator"
	FieldProducer     MetadataField = "producer"
	FieldCreationDate MetadataField = "creation_date"
	FieldModDate      MetadataField = "mod_date"
)

// AllFields lists every metadata field in display order.
var AllFields = []MetadataField{
	FieldFilename,
	FieldTitle,
	FieldAuthor,
	FieldSubject,
	FieldKeywords,
	FieldCreator,
	FieldProducer,
	FieldCreationDate,
	FieldModDate,
}

// EditableFields are the metadata fields a user may change.
// Filename and the two dates are informational only.
var EditableFields = []MetadataField{
	FieldTitle,
	FieldAuthor,
	FieldSubject,
	FieldKeywords,
	FieldCreator,
	FieldProducer,
}

// IsEditable reports whether f is one of EditableFields.
func (f MetadataField) IsEditable() bool {
	for _, e := range EditableFields {
		if e == f {
			return true
		}
	}
	return false
}

// Label returns the display label for the field, e.g. "Creation Date".
func (f MetadataField) Label() string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Get returns the value of field f.
func (m Metadata) Get(f MetadataField) string {
	switch f {
	case FieldFilename:
		return m.Filename
	case FieldTitle:
		return m.Title
	case FieldAuthor:
		return m.Author
	case FieldSubject:
		return m.Subject
	case FieldKeywords:
		return m.Keywords
	case FieldCreator:
		return m.Creator
	case FieldProducer:
		return m.Producer
	case FieldCreationDate:
		return m.CreationDate
	case FieldModDate:
		return m.ModDate
	default:
		return ""
	}
}

// With returns a copy of m with field f set to value.
// Unknown fields leave the copy unchanged.
func (m Metadata) With(f MetadataField, value string) Metadata {
	switch f {
	case FieldFilename:
		m.Filename = value
	case FieldTitle:
		m.Title = value
	case FieldAuthor:
		m.Author = value
	case FieldSubject:
		m.Subject = value
	case FieldKeywords:
		m.Keywords = value
	case FieldCreator:
		m.Creator = value
	case FieldProducer:
		m.Producer = value
	case FieldCreationDate:
		m.CreationDate = value
	case FieldModDate:
		m.ModDate = value
	}
	return m
}

// DisplayValue returns the trimmed field value, or "None" when blank.
func (m Metadata) DisplayValue(f MetadataField) string {
	switch f {
	case FieldCreationDate, FieldModDate:
		return FormatPDFDate(m.Get(f))
	}
	v := strings.TrimSpace(m.Get(f))
	if v == "" {
		return NoneValue
	}
	return v
}
