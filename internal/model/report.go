package model

import "time"

// Report is a generated report: the text and a reference to its stored document.
// It is never mutated after creation.
type Report struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Text         string    `json:"laudo_txt"`
	DownloadPath string    `json:"download_docx"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
}
