package models

import (
	"time"
)

// Prompt is a suggested journaling question. A prompt without a user ID is
// global: visible to every authenticated user but editable by nobody through
// the user-facing API. IsSystem is set once at creation and never mutated.
type Prompt struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     *string   `bson:"user_id" json:"user_id,omitempty"`
	Title      string    `bson:"title" json:"title"`
	PromptText string    `bson:"prompt_text" json:"prompt_text"`
	Category   *string   `bson:"category,omitempty" json:"category,omitempty"`
	IsSystem   bool      `bson:"is_system" json:"is_system"`
	IsActive   bool      `bson:"is_active" json:"is_active"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
