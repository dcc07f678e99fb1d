package services

import (
	"context"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
)

// systemPrompts is the built-in prompt set for fresh deployments. They are
// global (no owner) and marked is_system so reseeding can detect them.
var systemPrompts = []struct {
	Title      string
	PromptText string
	Category   string
}{
	{"Today in three words", "Which three words best describe how you felt today, and why those?", "reflection"},
	{"Gratitude check", "What is one small thing that happened today you are grateful for?", "gratitude"},
	{"Energy audit", "What gave you energy today, and what drained it?", "reflection"},
	{"Tomorrow's intention", "What is one thing you want to do differently tomorrow?", "planning"},
	{"Body scan", "Where in your body did you feel stress today? What was happening at the time?", "awareness"},
}

// SeedSystemPrompts inserts the built-in global prompts when none exist yet.
// Returns the number of prompts inserted (0 on an already-seeded store).
func (s *PromptService) SeedSystemPrompts(ctx context.Context) (int, error) {
	existing, err := s.Store.CountSystem(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	now := s.Now().UTC()
	inserted := 0
	for _, seed := range systemPrompts {
		category := seed.Category
		prompt := models.Prompt{
			ID:         s.NewID(),
			UserID:     nil,
			Title:      seed.Title,
			PromptText: seed.PromptText,
			Category:   &category,
			IsSystem:   true,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.Store.Insert(ctx, &prompt); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
