package models

import (
	"time"
)

const DocumentStatusPending = "pending"

type Document struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    string    `json:"-" db:"owner_id"`
	Title      string    `json:"title" db:"title"`
	Filename   string    `json:"-" db:"filename"`
	Content    string    `json:"content,omitempty" db:"content"`
	Status     string    `json:"status" db:"status"`
	StorageKey string    `json:"-" db:"storage_key"`
	UploadDate time.Time `json:"upload_date" db:"upload_date"`
}

type UploadRequest struct {
	File        []byte
	Filename    string
	Title       string
	ContentType string
}

// DocumentSummary is the list view of a document, without its content.
type DocumentSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	UploadDate time.Time `json:"upload_date"`
}

func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:         d.ID,
		Title:      d.Title,
		Status:     d.Status,
		UploadDate: d.UploadDate,
	}
}
