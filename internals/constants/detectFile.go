package constants

import (
	"path/filepath"
	"strings"
)

// File kinds reported for uploaded documents.
const (
	FileKindPDF      = "pdf"
	FileKindDocument = "document"
	FileKindImage    = "image"
	FileKindOther    = "other"
)

func DetectFileKindFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileKindPDF
	case ".doc", ".docx", ".odt", ".rtf", ".txt":
		return FileKindDocument
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileKindImage
	default:
		return FileKindOther
	}
}
