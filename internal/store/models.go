package store

import "time"

type User struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
}

type Document struct {
	ID         string
	HumanName  string
	Slug       string
	IsRequired bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Section struct {
	ID         int64
	DocumentID string
	Heading    string
	Body       string
	SortOrder  int
	CreatedAt  time.Time
}

// Version is immutable once created. The database blocks UPDATE on its
// table; any content change produces a new row, never an edit.
type Version struct {
	ID              int64
	DocumentID      string
	Label           string
	ContentSnapshot string
	CreatedAt       time.Time
	PublishedAt     time.Time
	Hash            string
}

// Acceptance ties a user to one specific version. Unique per
// (user_id, version_id); re-accepting returns the existing row.
type Acceptance struct {
	ID                  int64
	UserID              string
	VersionID           int64
	VersionHashSnapshot string
	AcceptedAt          time.Time
	IPAddress           string
	UserAgent           string
}
