package models

// UploadedDocument is the ingested user file. RawText is set only after
// a successful plain-text extraction; binary formats keep their
// metadata but carry no analyzable content.
type UploadedDocument struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeHint  string `json:"mime_hint,omitempty"`
	SizeLabel string `json:"size_label"`
	TypeLabel string `json:"type_label"`
	RawText   string `json:"-"`
}
