package pdf

import (
	"github.com/zed-charania/Meridian/internal/n400"
)

// FormFieldType represents the type of a form field
type FormFieldType string

const (
	FormFieldTypeText      FormFieldType = "text"
	FormFieldTypeCheckbox  FormFieldType = "checkbox"
	FormFieldTypeRadio     FormFieldType = "radio"
	FormFieldTypeSelect    FormFieldType = "select"
	FormFieldTypeButton    FormFieldType = "button"
	FormFieldTypeSignature FormFieldType = "signature"
	FormFieldTypeUnknown   FormFieldType = "unknown"
)

// FormField describes one terminal field of the template.
type FormField struct {
	Name     string        `json:"name" yaml:"name"`
	Type     FormFieldType `json:"type" yaml:"type"`
	Options  []string      `json:"options,omitempty" yaml:"options,omitempty"`
	MaxLen   int           `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	ReadOnly bool          `json:"read_only,omitempty" yaml:"read_only,omitempty"`
}

// FillResult is the outcome of filling the template with a field mapping.
type FillResult struct {
	Data    []byte   `json:"-"`
	Mapped  int      `json:"mapped"`
	Filled  int      `json:"filled"`
	Missing []string `json:"missing,omitempty"`
}

// GenerateResult is a filled document ready to be returned to a caller.
type GenerateResult struct {
	Data     []byte      `json:"-"`
	Filename string      `json:"filename"`
	Fields   n400.Fields `json:"-"`
	Mapped   int         `json:"mapped"`
	Filled   int         `json:"filled"`
	Missing  []string    `json:"missing,omitempty"`
}

// FieldListResult is the debug listing of template field names.
type FieldListResult struct {
	TotalFields int      `json:"total_fields"`
	Fields      []string `json:"fields"`
}

// HealthResult reports whether the service can generate documents.
// TemplateExists reflects the configured location at the time of the call;
// TemplateLoaded reflects what was parsed at startup.
type HealthResult struct {
	Status         string `json:"status"`
	TemplateExists bool   `json:"template_exists"`
	TemplateLoaded bool   `json:"template_loaded"`
	TemplateSource string `json:"template_source,omitempty"`
	FieldCount     int    `json:"field_count"`
	PageCount      int    `json:"page_count,omitempty"`
}
