package pdf

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxFieldDepth bounds the field hierarchy walk so a malformed Parent/Kids
// cycle cannot recurse forever.
const maxFieldDepth = 32

// Field flag bits (PDF 32000-1:2008, 12.7.3.1 and 12.7.4.2).
const (
	flagReadOnly   = 1 << 0
	flagRadio      = 1 << 15
	flagPushButton = 1 << 16
)

// terminalField is a leaf of the AcroForm field tree together with its
// inherited attributes and widget annotations.
type terminalField struct {
	name    string
	dict    types.Dict
	ft      string
	flags   int
	widgets []types.Dict
}

func (f terminalField) fieldType() FormFieldType {
	switch f.ft {
	case "Btn":
		switch {
		case f.flags&flagRadio != 0:
			return FormFieldTypeRadio
		case f.flags&flagPushButton != 0:
			return FormFieldTypeButton
		}
		return FormFieldTypeCheckbox
	case "Tx":
		return FormFieldTypeText
	case "Ch":
		return FormFieldTypeSelect
	case "Sig":
		return FormFieldTypeSignature
	default:
		return FormFieldTypeUnknown
	}
}

// readContext parses a document held in memory.
func readContext(data []byte) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return ctx, nil
}

// acroFormDict returns the document's interactive form dictionary, or nil
// when there is none.
func acroFormDict(ctx *model.Context) (types.Dict, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	obj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil
	}

	d, err := ctx.DereferenceDict(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	return d, nil
}

// walkFields visits every terminal field of the AcroForm tree in document
// order. Names are fully qualified: the partial names of all ancestors
// joined with ".".
func walkFields(ctx *model.Context, visit func(terminalField) error) error {
	form, err := acroFormDict(ctx)
	if err != nil || form == nil {
		return err
	}

	fieldsObj, found := form.Find("Fields")
	if !found {
		return nil
	}

	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	w := fieldWalker{ctx: ctx, visit: visit}
	for _, obj := range fields {
		if err := w.walk(obj, terminalField{}, 0); err != nil {
			return err
		}
	}
	return nil
}

type fieldWalker struct {
	ctx   *model.Context
	visit func(terminalField) error
}

func (w fieldWalker) walk(obj types.Object, parent terminalField, depth int) error {
	if depth > maxFieldDepth {
		return fmt.Errorf("field hierarchy deeper than %d levels below %q", maxFieldDepth, parent.name)
	}

	d, err := w.ctx.DereferenceDict(obj)
	if err != nil || d == nil {
		return nil //nolint:nilerr // unreadable field entries are skipped
	}

	node := terminalField{
		name:  parent.name,
		dict:  d,
		ft:    parent.ft,
		flags: parent.flags,
	}
	if partial := w.partialName(d); partial != "" {
		if node.name == "" {
			node.name = partial
		} else {
			node.name += "." + partial
		}
	}
	if ft, found := d.Find("FT"); found {
		if name, err := w.ctx.DereferenceName(ft, model.V10, nil); err == nil {
			node.ft = string(name)
		}
	}
	if ff, found := d.Find("Ff"); found {
		if flags, err := w.ctx.DereferenceInteger(ff); err == nil && flags != nil {
			node.flags = int(*flags)
		}
	}

	var children []types.Object
	if kidsObj, found := d.Find("Kids"); found {
		kids, err := w.ctx.DereferenceArray(kidsObj)
		if err == nil {
			for _, kid := range kids {
				kd, err := w.ctx.DereferenceDict(kid)
				if err != nil || kd == nil {
					continue
				}
				if _, named := kd.Find("T"); named {
					children = append(children, kid)
				} else {
					node.widgets = append(node.widgets, kd)
				}
			}
		}
	}

	for _, child := range children {
		if err := w.walk(child, node, depth+1); err != nil {
			return err
		}
	}

	if len(children) > 0 && len(node.widgets) == 0 {
		return nil
	}
	if isWidget(d) {
		node.widgets = append(node.widgets, d)
	}
	if node.name == "" {
		return nil
	}
	return w.visit(node)
}

func (w fieldWalker) partialName(d types.Dict) string {
	obj, found := d.Find("T")
	if !found {
		return ""
	}
	name, err := w.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	return name
}

func isWidget(d types.Dict) bool {
	subtype := d.NameEntry("Subtype")
	return subtype != nil && *subtype == "Widget"
}

// onStates returns the appearance state names a button widget can take,
// excluding Off.
func onStates(ctx *model.Context, widget types.Dict) []string {
	apObj, found := widget.Find("AP")
	if !found {
		return nil
	}
	ap, err := ctx.DereferenceDict(apObj)
	if err != nil || ap == nil {
		return nil
	}
	nObj, found := ap.Find("N")
	if !found {
		return nil
	}
	n, err := ctx.DereferenceDict(nObj)
	if err != nil || n == nil {
		return nil
	}

	var states []string
	for key := range n {
		if key != "Off" {
			states = append(states, key)
		}
	}
	sort.Strings(states)
	return states
}
