package domain

import "time"

// Prompt is a saved prompt owned by exactly one user. Original and Enhanced
// hold normalized (trimmed, HTML-escaped) content; Title and Notes are
// optional, Title is clearable.
type Prompt struct {
	ID        string
	UserID    string
	Original  string
	Enhanced  string
	Notes     *string
	Title     *string
	CreatedAt time.Time
}

// HasTitle reports whether the prompt carries a non-empty title.
func (p Prompt) HasTitle() bool {
	return p.Title != nil && *p.Title != ""
}
