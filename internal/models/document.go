package models

import "time"

// Document is a stored confirmation document keyed by tracking key.
// Only the Postgres document store persists this model. The key column is
// unbounded text since tracking keys have no length limit.
type Document struct {
	ClaveRastreo string    `gorm:"primaryKey" json:"clave_rastreo"`
	ContentType  string    `gorm:"size:64;not null" json:"content_type"`
	Content      []byte    `gorm:"type:bytea;not null" json:"-"`
	Size         int       `gorm:"not null" json:"size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the gorm default.
func (Document) TableName() string {
	return "confirmation_documents"
}
