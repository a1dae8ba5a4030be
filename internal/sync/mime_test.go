package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportPolicyPerType(t *testing.T) {
	cases := []struct {
		mime string
		ext  string
		out  string
	}{
		{MimeDocument, "docx", MimeDocx},
		{MimeSpreadsheet, "xlsx", MimeXlsx},
		{MimeSlides, "pptx", MimePptx},
	}

	for _, tc := range cases {
		ok, rule := ExportPolicy(tc.mime, false)
		assert.True(t, ok, tc.mime)
		assert.Equal(t, tc.ext, rule.Ext)
		assert.Equal(t, tc.out, rule.MimeType)
	}
}

func TestExportPolicyUmbrellaPDF(t *testing.T) {
	for _, mime := range []string{MimeDocument, MimeSpreadsheet, MimeSlides} {
		ok, rule := ExportPolicy(mime, true)
		assert.True(t, ok)
		assert.Equal(t, "pdf", rule.Ext)
		assert.Equal(t, MimePdf, rule.MimeType)
	}
}

func TestExportPolicyNonNative(t *testing.T) {
	for _, mime := range []string{MimePdf, MimeText, "image/png", "application/octet-stream"} {
		ok, _ := ExportPolicy(mime, false)
		assert.False(t, ok, mime)
		ok, _ = ExportPolicy(mime, true)
		assert.False(t, ok, "umbrella policy must not export non-native %s", mime)
	}
}

func TestInferUploadMime(t *testing.T) {
	assert.Equal(t, MimeDocx, InferUploadMime("Report.docx"))
	assert.Equal(t, MimeXlsx, InferUploadMime("budget.XLSX"))
	assert.Equal(t, MimePdf, InferUploadMime("scan.pdf"))
	assert.Equal(t, MimeText, InferUploadMime("notes.txt"))
	assert.Equal(t, MimeText, InferUploadMime("mystery.bin"), "unknown extensions default to plain text")
	assert.Equal(t, MimeText, InferUploadMime("README"))
}
