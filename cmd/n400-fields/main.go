package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zed-charania/Meridian/internal/intake"
	"github.com/zed-charania/Meridian/internal/n400"
	"github.com/zed-charania/Meridian/internal/pdf"
)

const maxTemplateSize = 100 * 1024 * 1024

type options struct {
	format  string
	mapFile string
	fill    string
	out     string
	values  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("n400-fields", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json, yaml")
	fs.StringVar(&opts.mapFile, "map", "", "Print the field mapping for an intake JSON file instead of the template schema")
	fs.StringVar(&opts.fill, "fill", "", "Fill the template from an intake JSON file (requires -out)")
	fs.StringVar(&opts.out, "out", "", "Output path for -fill")
	fs.BoolVar(&opts.values, "values", false, "Print the current field values of the PDF")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := execute(opts, fs.Args(), stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "N-400 Fields - inspect and fill the N-400 PDF template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  n400-fields [OPTIONS] <pdf_file>")
	fmt.Fprintln(w, "  n400-fields -map intake.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  n400-fields templates/n400.pdf")
	fmt.Fprintln(w, "  n400-fields -format yaml templates/n400.pdf")
	fmt.Fprintln(w, "  n400-fields -map intake.json -format json")
	fmt.Fprintln(w, "  n400-fields -fill intake.json -out N-400.pdf templates/n400.pdf")
	fmt.Fprintln(w, "  n400-fields -values N-400.pdf")
}

func execute(opts options, args []string, stdout io.Writer) error {
	switch opts.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.mapFile != "" {
		rec, err := readIntake(opts.mapFile)
		if err != nil {
			return err
		}
		return writeMapping(stdout, opts.format, n400.Map(rec))
	}

	if len(args) != 1 {
		return fmt.Errorf("PDF file path required")
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch {
	case opts.fill != "":
		return fill(opts, path, data, stdout)
	case opts.values:
		values, err := pdf.FieldValues(data)
		if err != nil {
			return err
		}
		return writeValues(stdout, opts.format, values)
	default:
		fields, err := pdf.ExtractSchema(data)
		if err != nil {
			return err
		}
		return writeSchema(stdout, opts.format, path, fields)
	}
}

func readIntake(path string) (intake.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open intake file: %w", err)
	}
	defer f.Close()
	return intake.Decode(f)
}

func fill(opts options, path string, data []byte, stdout io.Writer) error {
	if opts.out == "" {
		return fmt.Errorf("-fill requires -out")
	}
	rec, err := readIntake(opts.fill)
	if err != nil {
		return err
	}

	tmpl, err := pdf.NewTemplate(path, data, pdf.NewValidator(maxTemplateSize))
	if err != nil {
		return err
	}
	result, err := pdf.NewFiller(tmpl, false).Fill(n400.Map(rec))
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, result.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}

	fmt.Fprintf(stdout, "Wrote %s: %d mapped, %d filled\n", opts.out, result.Mapped, result.Filled)
	for _, name := range result.Missing {
		fmt.Fprintf(stdout, "  not in template: %s\n", name)
	}
	return nil
}

func writeSchema(w io.Writer, format, path string, fields []pdf.FormField) error {
	switch format {
	case "json":
		return writeJSON(w, fields)
	case "yaml":
		return writeYAML(w, fields)
	}

	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Fields: %d\n\n", len(fields))
	for i, f := range fields {
		fmt.Fprintf(w, "%d. %s (%s)", i+1, f.Name, f.Type)
		if len(f.Options) > 0 {
			fmt.Fprintf(w, " %v", f.Options)
		}
		if f.MaxLen > 0 {
			fmt.Fprintf(w, " max %d", f.MaxLen)
		}
		if f.ReadOnly {
			fmt.Fprint(w, " read-only")
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeMapping(w io.Writer, format string, fields n400.Fields) error {
	return writeValues(w, format, fields.Strings())
}

func writeValues(w io.Writer, format string, values map[string]string) error {
	switch format {
	case "json":
		return writeJSON(w, values)
	case "yaml":
		return writeYAML(w, values)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s = %s\n", name, values[name])
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
