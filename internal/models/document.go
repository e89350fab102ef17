package models

import (
	"path/filepath"
	"strings"
)

// ResumeFile is one uploaded or loaded resume before text extraction.
type ResumeFile struct {
	Name string
	Data []byte
}

func (f ResumeFile) Size() int64 {
	return int64(len(f.Data))
}

// IsPDF reports whether the file name carries a .pdf extension.
func (f ResumeFile) IsPDF() bool {
	return strings.EqualFold(filepath.Ext(f.Name), ".pdf")
}
