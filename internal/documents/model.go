package documents

import "time"

// Status is the review state of a document.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three review states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document is an uploaded file under review. ExtractedText and Summary are
// filled in best-effort after creation and may stay empty when extraction or
// summarization failed.
type Document struct {
	ID            string
	Title         string
	FileURL       string
	ExtractedText string
	Summary       string
	Status        Status
	RejectReason  string
	CreatedBy     string
	CreatedAt     time.Time
}

// Assignment grants one user visibility of one approved document.
// A (document, user) pair is unique.
type Assignment struct {
	DocumentID string
	UserID     string
	AssignedAt time.Time
}

// Identity is the resolved caller passed into the service layer. The zero
// value is an anonymous caller.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// Resolved reports whether the identity belongs to a known caller.
func (i Identity) Resolved() bool {
	return i.UserID != ""
}
