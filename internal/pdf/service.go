package pdf

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/zed-charania/Meridian/internal/intake"
	"github.com/zed-charania/Meridian/internal/n400"
	pdferrors "github.com/zed-charania/Meridian/internal/pdf/errors"
)

// DefaultFieldListLimit caps the field listing returned to HTTP callers.
const DefaultFieldListLimit = 200

// Service turns intake records into filled N-400 documents. A Service whose
// template failed to load still answers health checks and mappings.
type Service struct {
	template       *Template
	templateSource string
	filler         *Filler
	debug          bool
}

// NewService creates a new generation service. template may be nil, in which
// case generation fails with ErrTemplateNotFound.
func NewService(template *Template, templateSource string, debug bool) *Service {
	return &Service{
		template:       template,
		templateSource: templateSource,
		filler:         NewFiller(template, debug),
		debug:          debug,
	}
}

// TemplateAvailable reports whether a template is loaded.
func (s *Service) TemplateAvailable() bool {
	return s.template != nil
}

// Map translates an intake record into template field values.
func (s *Service) Map(rec intake.Record) n400.Fields {
	return n400.Map(rec)
}

// Generate maps rec and fills the template with the result.
func (s *Service) Generate(ctx context.Context, rec intake.Record) (*GenerateResult, error) {
	if rec.Empty() {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidRequest, "no data provided")
	}
	if s.template == nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeTemplateNotFound, "PDF template not found").WithContext(s.templateSource)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation cancelled: %w", err)
	}

	fields := n400.Map(rec)
	if s.debug {
		log.Printf("Received %d intake fields, mapped to %d PDF fields", len(rec), len(fields))
	}

	filled, err := s.filler.Fill(fields)
	if err != nil {
		return nil, err
	}
	if len(filled.Missing) > 0 {
		log.Printf("Template has no field for %d of %d mapped identifiers", len(filled.Missing), filled.Mapped)
	}

	return &GenerateResult{
		Data:     filled.Data,
		Filename: Filename(rec),
		Fields:   fields,
		Mapped:   filled.Mapped,
		Filled:   filled.Filled,
		Missing:  filled.Missing,
	}, nil
}

// ListFields returns at most limit template field names together with the
// total count. A non-positive limit lists every field.
func (s *Service) ListFields(limit int) (*FieldListResult, error) {
	if s.template == nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeTemplateNotFound, "Template not found").WithContext(s.templateSource)
	}

	names := s.template.FieldNames()
	result := &FieldListResult{TotalFields: len(names), Fields: names}
	if limit > 0 && len(names) > limit {
		result.Fields = names[:limit]
	}
	return result, nil
}

// Schema returns the full template field schema.
func (s *Service) Schema() ([]FormField, error) {
	if s.template == nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeTemplateNotFound, "Template not found").WithContext(s.templateSource)
	}
	return s.template.Fields(), nil
}

// Health reports template availability.
func (s *Service) Health() HealthResult {
	h := HealthResult{
		Status:         "healthy",
		TemplateSource: s.templateSource,
	}
	h.TemplateExists = s.templatePresent()
	if s.template != nil {
		h.TemplateLoaded = true
		h.FieldCount = len(s.template.fields)
		h.PageCount = s.template.PageCount()
	}
	return h
}

// templatePresent stats a file source on every call. Object sources are only
// read at startup, so they count as present when they loaded.
func (s *Service) templatePresent() bool {
	if s.templateSource == "" {
		return false
	}
	if IsObjectLocation(s.templateSource) {
		return s.template != nil
	}
	info, err := os.Stat(s.templateSource)
	return err == nil && info.Mode().IsRegular()
}

// SampleRecord is the fixed record used by the smoke-test endpoint.
func (s *Service) SampleRecord() intake.Record {
	return SampleRecord()
}

// SampleRecord returns a minimal five-year applicant.
func SampleRecord() intake.Record {
	return intake.Record{
		"eligibility_basis": "5year",
		"first_name":        "Maria",
		"last_name":         "Rodriguez",
		"a_number":          "123456789",
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Filename builds the attachment name N-400_<last>_<first>.pdf. Missing
// names default to Unknown and Applicant; anything outside [A-Za-z0-9_-]
// in a name becomes "_".
func Filename(rec intake.Record) string {
	last := rec.String("last_name")
	if last == "" {
		last = "Unknown"
	}
	first := rec.String("first_name")
	if first == "" {
		first = "Applicant"
	}
	return fmt.Sprintf("N-400_%s_%s.pdf",
		unsafeFilenameChars.ReplaceAllString(last, "_"),
		unsafeFilenameChars.ReplaceAllString(first, "_"))
}
