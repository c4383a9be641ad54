package pdf

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/unicode"

	"github.com/zed-charania/Meridian/internal/n400"
	pdferrors "github.com/zed-charania/Meridian/internal/pdf/errors"
)

// Filler writes field values into copies of a template.
type Filler struct {
	template *Template
	debug    bool
}

// NewFiller creates a filler for the given template.
func NewFiller(template *Template, debug bool) *Filler {
	return &Filler{template: template, debug: debug}
}

// Fill applies fields to a fresh copy of the template and returns the
// serialised document. Identifiers the template does not define are skipped
// and reported in Missing.
func (f *Filler) Fill(fields n400.Fields) (*FillResult, error) {
	if f.template == nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeTemplateNotFound, "no template loaded")
	}

	ctx, err := readContext(f.template.Bytes())
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidTemplate, "failed to open template", err)
	}

	if ctx.Encrypt != nil {
		ctx.Cmd = model.DECRYPT
	}

	form, err := acroFormDict(ctx)
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeInvalidTemplate, "failed to read form", err)
	}
	if form == nil {
		return nil, pdferrors.New(pdferrors.ErrorTypeInvalidTemplate, "template has no AcroForm")
	}
	form.Update("NeedAppearances", types.Boolean(true))

	result := &FillResult{Mapped: len(fields)}
	applied := make(map[string]bool, len(fields))

	err = walkFields(ctx, func(tf terminalField) error {
		v, ok := fields[tf.name]
		if !ok || applied[tf.name] {
			return nil
		}
		f.checkLength(tf.name, v)
		if err := f.apply(ctx, tf, v); err != nil {
			log.Printf("Warning: could not set field %s: %v", tf.name, err)
			return nil
		}
		applied[tf.name] = true
		if f.debug {
			log.Printf("Set %s = %s", tf.name, v)
		}
		return nil
	})
	if err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeFillFailed, "failed to walk form fields", err)
	}

	for name := range fields {
		if !applied[name] {
			result.Missing = append(result.Missing, name)
		}
	}
	sort.Strings(result.Missing)
	result.Filled = len(applied)

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, pdferrors.Wrap(pdferrors.ErrorTypeFillFailed, "failed to write document", err)
	}
	result.Data = buf.Bytes()

	return result, nil
}

// checkLength warns when a text value is longer than the field's /MaxLen.
// The value is written anyway; viewers clip it.
func (f *Filler) checkLength(name string, v n400.Value) {
	if v.IsToken() {
		return
	}
	field, ok := f.template.Field(name)
	if !ok || field.MaxLen <= 0 {
		return
	}
	if n := utf8.RuneCountInString(v.String()); n > field.MaxLen {
		log.Printf("Warning: value for %s has %d characters, field allows %d", name, n, field.MaxLen)
	}
}

func (f *Filler) apply(ctx *model.Context, tf terminalField, v n400.Value) error {
	if v.IsToken() {
		setButton(ctx, tf, v.Token())
		return nil
	}

	obj, err := encodeText(v.String())
	if err != nil {
		return err
	}
	tf.dict.Update("V", obj)
	return nil
}

// setButton selects token on a checkbox or radio field: the field value
// becomes the token and every widget shows either that state or Off.
func setButton(ctx *model.Context, tf terminalField, token string) {
	tf.dict.Update("V", types.Name(token))

	for _, w := range tf.widgets {
		state := "Off"
		for _, s := range onStates(ctx, w) {
			if s == token {
				state = token
				break
			}
		}
		w.Update("AS", types.Name(state))
	}
}

// encodeText renders s as a PDF text string: a literal string for plain
// ASCII, UTF-16BE with a byte order mark otherwise.
func encodeText(s string) (types.Object, error) {
	if isASCII(s) {
		return types.StringLiteral(escapePDFString(s)), nil
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("value is not valid UTF-8")
	}
	b, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return types.HexLiteral(strings.ToUpper(hex.EncodeToString(b))), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// escapePDFString escapes the characters that are special inside a PDF
// literal string.
func escapePDFString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
