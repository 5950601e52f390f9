package models

// Attachment is file metadata owned by one transaction. Path is relative to
// the attachment storage root.
type Attachment struct {
	Base
	TransactionID string `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Filename      string `gorm:"not null" json:"filename"`
	OriginalName  string `gorm:"not null" json:"original_name"`
	Path          string `gorm:"not null" json:"-"`
	Size          int64  `gorm:"not null" json:"size"`
	MimeType      string `gorm:"size:100;not null" json:"mime_type"`
}
