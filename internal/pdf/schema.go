package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ExtractSchema lists the terminal fields of a document's AcroForm. A
// document without a form yields an empty schema.
func ExtractSchema(data []byte) ([]FormField, error) {
	ctx, err := readContext(data)
	if err != nil {
		return nil, err
	}
	return schemaFromContext(ctx)
}

func schemaFromContext(ctx *model.Context) ([]FormField, error) {
	var fields []FormField
	err := walkFields(ctx, func(f terminalField) error {
		field := FormField{
			Name:     f.name,
			Type:     f.fieldType(),
			ReadOnly: f.flags&flagReadOnly != 0,
		}

		switch field.Type {
		case FormFieldTypeCheckbox, FormFieldTypeRadio:
			field.Options = buttonStates(ctx, f)
		case FormFieldTypeSelect:
			field.Options = choiceOptions(ctx, f.dict)
		case FormFieldTypeText:
			if obj, found := f.dict.Find("MaxLen"); found {
				if maxLen, err := ctx.DereferenceInteger(obj); err == nil && maxLen != nil {
					field.MaxLen = int(*maxLen)
				}
			}
		}

		fields = append(fields, field)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract form fields: %w", err)
	}
	return fields, nil
}

// buttonStates collects the distinct on-state names across a button's
// widgets.
func buttonStates(ctx *model.Context, f terminalField) []string {
	seen := make(map[string]bool)
	var states []string
	for _, w := range f.widgets {
		for _, s := range onStates(ctx, w) {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}
	return states
}

// choiceOptions extracts options for choice fields
func choiceOptions(ctx *model.Context, fieldDict types.Dict) []string {
	var options []string

	optObj, found := fieldDict.Find("Opt")
	if !found {
		return options
	}

	optArray, err := ctx.DereferenceArray(optObj)
	if err != nil {
		return options
	}

	for _, opt := range optArray {
		// Options are either strings or [export, display] pairs.
		if str, err := ctx.DereferenceStringOrHexLiteral(opt, model.V10, nil); err == nil {
			options = append(options, str)
		} else if arr, err := ctx.DereferenceArray(opt); err == nil && len(arr) >= 2 {
			if displayVal, err := ctx.DereferenceStringOrHexLiteral(arr[1], model.V10, nil); err == nil {
				options = append(options, displayVal)
			}
		}
	}

	return options
}

// FieldValues returns the current value of every terminal field that has
// one. Button values are rendered as PDF names ("/Y").
func FieldValues(data []byte) (map[string]string, error) {
	ctx, err := readContext(data)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	err = walkFields(ctx, func(f terminalField) error {
		obj, found := f.dict.Find("V")
		if !found {
			return nil
		}
		if name, err := ctx.DereferenceName(obj, model.V10, nil); err == nil && name != "" {
			values[f.name] = "/" + string(name)
			return nil
		}
		if s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil {
			values[f.name] = s
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read form values: %w", err)
	}
	return values, nil
}
