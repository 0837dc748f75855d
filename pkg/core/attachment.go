package core

import (
	"path/filepath"
	"strings"
	"time"
)

// AttachmentType is the category of an attachment, fixed when it is created.
type AttachmentType string

const (
	TypePDF   AttachmentType = "PDF"
	TypeImage AttachmentType = "Image"
	TypeWord  AttachmentType = "Word"
	TypeExcel AttachmentType = "Excel"
	TypeOther AttachmentType = "Other"
)

var extensionTypes = map[string]AttachmentType{
	"pdf":  TypePDF,
	"jpg":  TypeImage,
	"jpeg": TypeImage,
	"png":  TypeImage,
	"gif":  TypeImage,
	"doc":  TypeWord,
	"docx": TypeWord,
	"xls":  TypeExcel,
	"xlsx": TypeExcel,
}

// TypeFromExtension maps a file name to its category.
// Unknown and missing extensions are TypeOther.
func TypeFromExtension(name string) AttachmentType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeOther
}

// NewAttachment builds the record for a file the user picked. The title
// falls back to the part of the file name before its first dot.
func NewAttachment(path, title, description string, now time.Time) Attachment {
	fileName := filepath.Base(path)
	title = strings.TrimSpace(title)
	if title == "" {
		title, _, _ = strings.Cut(fileName, ".")
		if title == "" {
			title = fileName
		}
	}
	return Attachment{
		Title:       title,
		Description: description,
		FileName:    fileName,
		Type:        TypeFromExtension(fileName),
		FilePath:    path,
		AddedAt:     now,
	}
}
