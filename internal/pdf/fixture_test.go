package pdf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zed-charania/Meridian/internal/pdf/pdftest"
)

func newFixtureTemplate(t *testing.T) *Template {
	t.Helper()
	tmpl, err := NewTemplate("fixture.pdf", pdftest.FormPDF(), NewValidator(1024*1024))
	require.NoError(t, err)
	return tmpl
}
