package pdf

import (
	"context"
	"log"

	pdferrors "github.com/zed-charania/Meridian/internal/pdf/errors"
)

// Template is a loaded form template. It is immutable after loading and
// safe to share between concurrent fills.
type Template struct {
	source string
	data   []byte
	fields []FormField
	index  map[string]int
	pages  int
}

// LoadTemplate reads and parses the template at location, which is either a
// file path or an s3://bucket/key object.
func LoadTemplate(ctx context.Context, location string, maxFileSize int64, s3 S3Options) (*Template, error) {
	validator := NewValidator(maxFileSize)

	data, err := readSource(ctx, location, validator, s3)
	if err != nil {
		return nil, err
	}

	return NewTemplate(location, data, validator)
}

// NewTemplate parses a template already held in memory.
func NewTemplate(source string, data []byte, validator *Validator) (*Template, error) {
	if err := validator.ValidateBytes(data); err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidTemplate, "template rejected", err).WithContext(source)
	}

	fields, err := ExtractSchema(data)
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidTemplate, "failed to parse template", err).WithContext(source)
	}
	if len(fields) == 0 {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidTemplate, "template has no form fields").WithContext(source)
	}

	pages, err := validator.PageCount(data)
	if err != nil {
		log.Printf("Warning: secondary parser could not read template %s: %v", source, err)
	}

	t := &Template{
		source: source,
		data:   data,
		fields: fields,
		index:  make(map[string]int, len(fields)),
		pages:  pages,
	}
	for i, f := range fields {
		t.index[f.Name] = i
	}
	return t, nil
}

// Source returns where the template was loaded from.
func (t *Template) Source() string {
	return t.source
}

// Bytes returns the raw template. Callers must not modify it.
func (t *Template) Bytes() []byte {
	return t.data
}

// Fields returns the template's field schema in document order.
func (t *Template) Fields() []FormField {
	out := make([]FormField, len(t.fields))
	copy(out, t.fields)
	return out
}

// FieldNames returns the fully qualified field names in document order.
func (t *Template) FieldNames() []string {
	names := make([]string, len(t.fields))
	for i, f := range t.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by its fully qualified name.
func (t *Template) Field(name string) (FormField, bool) {
	i, ok := t.index[name]
	if !ok {
		return FormField{}, false
	}
	return t.fields[i], true
}

// PageCount returns the page count reported by the secondary parser, or 0
// if it could not read the template.
func (t *Template) PageCount() int {
	return t.pages
}
