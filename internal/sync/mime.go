package sync

import (
	"path/filepath"
	"strings"
)

// Drive MIME types.
// https://developers.google.com/drive/api/guides/mime-types
const (
	MimeFolder      = "application/vnd.google-apps.folder"
	MimeDocument    = "application/vnd.google-apps.document"
	MimeSpreadsheet = "application/vnd.google-apps.spreadsheet"
	MimeSlides      = "application/vnd.google-apps.presentation"
	MimeShortcut    = "application/vnd.google-apps.shortcut"

	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimePdf  = "application/pdf"
	MimeText = "text/plain"
)

// ExportRule pairs the local file extension with the export MIME type for a
// native document format.
type ExportRule struct {
	Ext      string
	MimeType string
}

// Per-type export targets, used unless the umbrella PDF policy is active.
var exportRules = map[string]ExportRule{
	MimeDocument:    {Ext: "docx", MimeType: MimeDocx},
	MimeSpreadsheet: {Ext: "xlsx", MimeType: MimeXlsx},
	MimeSlides:      {Ext: "pptx", MimeType: MimePptx},
}

var pdfRule = ExportRule{Ext: "pdf", MimeType: MimePdf}

// IsNativeDoc reports whether mimeType is a Workspace format that requires
// export before its content is usable locally.
func IsNativeDoc(mimeType string) bool {
	_, ok := exportRules[mimeType]
	return ok
}

// ExportPolicy returns whether entries of mimeType are downloaded via export
// and, if so, to which extension and format. alwaysPDF forces every native
// format to the single PDF target.
func ExportPolicy(mimeType string, alwaysPDF bool) (bool, ExportRule) {
	rule, ok := exportRules[mimeType]
	if !ok {
		return false, ExportRule{}
	}
	if alwaysPDF {
		return true, pdfRule
	}
	return true, rule
}

// uploadMimes maps local file extensions to upload content types.
var uploadMimes = map[string]string{
	".docx": MimeDocx,
	".xlsx": MimeXlsx,
	".pptx": MimePptx,
	".pdf":  MimePdf,
	".txt":  MimeText,
}

// InferUploadMime guesses the content type for a new upload from the local
// file name, defaulting to plain text.
func InferUploadMime(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mime, ok := uploadMimes[ext]; ok {
		return mime
	}
	return MimeText
}
