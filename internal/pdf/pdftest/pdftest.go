// Package pdftest builds small in-memory PDF documents for tests.
package pdftest

import (
	"fmt"
	"strings"
)

// Fully qualified names of the fields in FormPDF.
const (
	FamilyName  = "form1[0].#subform[0].P2_Line1_FamilyName[0]"
	GivenName   = "form1[0].#subform[0].P2_Line1_GivenName[0]"
	Eligibility = "form1[0].#subform[0].Part1_Eligibility[2]"
	Other       = "form1[0].#subform[0].Part1_Eligibility[1]"
	Genocide    = `form1[0].#subform[0].P9_Line7\.b\.[1]`
	Gender      = "Gender"
	Country     = "Country"
	Unknown     = "form1[0].#subform[9].Unknown[0]"
)

// FormPDF assembles a one-page document whose AcroForm mirrors the
// shape of the N-400 template: a form1[0] root with a #subform[0] child
// holding merged field/widget dictionaries, plus a top-level radio group
// with separate widgets and a top-level choice field.
func FormPDF() []byte {
	widget := "/Type /Annot /Subtype /Widget /P 3 0 R /Rect [0 0 10 10]"
	objects := []string{
		// 1 catalog
		"<< /Type /Catalog /Pages 2 0 R /AcroForm 4 0 R >>",
		// 2 pages
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		// 3 page
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> " +
			"/Annots [7 0 R 8 0 R 9 0 R 10 0 R 11 0 R 15 0 R 16 0 R 17 0 R] >>",
		// 4 AcroForm
		"<< /Fields [5 0 R 14 0 R 11 0 R] /DA (/Helv 0 Tf 0 g) >>",
		// 5 form1[0]
		"<< /T (form1[0]) /Kids [6 0 R] >>",
		// 6 #subform[0]
		"<< /T (#subform[0]) /Parent 5 0 R /Kids [7 0 R 8 0 R 9 0 R 10 0 R 17 0 R] >>",
		// 7 family name
		"<< " + widget + " /FT /Tx /T (P2_Line1_FamilyName[0]) /Parent 6 0 R >>",
		// 8 eligibility A
		"<< " + widget + " /FT /Btn /T (Part1_Eligibility[2]) /Parent 6 0 R " +
			"/AP << /N << /A 12 0 R /Off 13 0 R >> >> /AS /Off >>",
		// 9 eligibility B
		"<< " + widget + " /FT /Btn /T (Part1_Eligibility[1]) /Parent 6 0 R " +
			"/AP << /N << /B 12 0 R /Off 13 0 R >> >> /AS /Off >>",
		// 10 given name
		"<< " + widget + " /FT /Tx /T (P2_Line1_GivenName[0]) /Parent 6 0 R /MaxLen 20 /Ff 1 >>",
		// 11 country choice
		"<< " + widget + " /FT /Ch /T (Country) /Opt [(United States) [(CA) (Canada)]] >>",
		// 12 on appearance
		"<< /Type /XObject /Subtype /Form /BBox [0 0 10 10] /Length 0 >>\nstream\n\nendstream",
		// 13 off appearance
		"<< /Type /XObject /Subtype /Form /BBox [0 0 10 10] /Length 0 >>\nstream\n\nendstream",
		// 14 radio group
		"<< /FT /Btn /Ff 49152 /T (Gender) /Kids [15 0 R 16 0 R] >>",
		// 15 radio widget M
		"<< " + widget + " /Parent 14 0 R /AP << /N << /M 12 0 R /Off 13 0 R >> >> /AS /Off >>",
		// 16 radio widget F
		"<< " + widget + " /Parent 14 0 R /AP << /N << /F 12 0 R /Off 13 0 R >> >> /AS /Off >>",
		// 17 escaped partial name
		"<< " + widget + ` /FT /Btn /T (P9_Line7\\.b\\.[1]) /Parent 6 0 R ` +
			"/AP << /N << /Y 12 0 R /Off 13 0 R >> >> /AS /Off >>",
	}

	return assemble(objects)
}

// PlainPDF is a valid document without an AcroForm.
func PlainPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
	}

	return assemble(objects)
}

// assemble numbers objects from 1, writes a classic cross-reference table
// with exact offsets and a trailer rooted at object 1.
func assemble(objects []string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.7\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return []byte(b.String())
}
