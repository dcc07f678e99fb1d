package models

import (
	"time"
)

// JournalEntry is a private mood-journal entry. Every entry belongs to
// exactly one user; it is never visible to anyone else.
type JournalEntry struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	EntryDate time.Time `bson:"entry_date" json:"entry_date"`
	MoodScore *int      `bson:"mood_score,omitempty" json:"mood_score,omitempty"`
	MoodLabel *string   `bson:"mood_label,omitempty" json:"mood_label,omitempty"`
	Tags      *string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Title     *string   `bson:"title,omitempty" json:"title,omitempty"`
	Body      *string   `bson:"body,omitempty" json:"body,omitempty"`
	PromptID  *string   `bson:"prompt_id,omitempty" json:"prompt_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
