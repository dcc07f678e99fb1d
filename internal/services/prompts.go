package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
	"github.com/AnshRaj112/moodlog-backend/internal/store"
)

const (
	maxCategoryLen   = 80
	maxPromptTextLen = 2000
)

// PromptStore is the persistence contract for prompts. FindOwned matches
// strictly on (id, owner): global prompts and prompts of other users are
// invisible to it even though ListVisible returns them.
type PromptStore interface {
	Insert(ctx context.Context, prompt *models.Prompt) error
	FindOwned(ctx context.Context, id, userID string) (*models.Prompt, error)
	UpdateOwned(ctx context.Context, id, userID string, fields store.Fields) error
	ListVisible(ctx context.Context, userID string, includeInactive bool) ([]models.Prompt, error)
	CountSystem(ctx context.Context) (int64, error)
}

// PromptService implements create, update and listing over journaling
// prompts. Prompts are never deleted: deactivation via is_active=false is the
// only way to retire one.
type PromptService struct {
	Store PromptStore
	NewID func() string
	Now   func() time.Time
}

func NewPromptService(prompts PromptStore) *PromptService {
	return &PromptService{
		Store: prompts,
		NewID: uuid.NewString,
		Now:   time.Now,
	}
}

// CreatePromptInput is the payload for creating a prompt. is_active defaults
// to true; is_system is not caller-settable.
type CreatePromptInput struct {
	Title      string  `json:"title"`
	PromptText string  `json:"prompt_text"`
	Category   *string `json:"category"`
	IsActive   *bool   `json:"is_active"`
}

// PromptList is the visible prompt set for a caller. Total is the count of
// the returned items.
type PromptList struct {
	Items []models.Prompt `json:"items"`
	Total int             `json:"total"`
}

// Create persists a user-owned prompt. is_system is always false here;
// system prompts only enter through seeding.
func (s *PromptService) Create(ctx context.Context, input CreatePromptInput) (*models.Prompt, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return nil, authErr
	}

	title, err := trimmedBounded("title", input.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	promptText, err := trimmedBounded("prompt_text", input.PromptText, maxPromptTextLen)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	prompt := models.Prompt{
		ID:         s.NewID(),
		UserID:     &userID,
		Title:      title,
		PromptText: promptText,
		IsSystem:   false,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if input.Category != nil {
		category, vErr := trimmedBounded("category", *input.Category, maxCategoryLen)
		if vErr != nil {
			return nil, vErr
		}
		prompt.Category = &category
	}
	if input.IsActive != nil {
		prompt.IsActive = *input.IsActive
	}

	if insertErr := s.Store.Insert(ctx, &prompt); insertErr != nil {
		return nil, insertErr
	}
	return &prompt, nil
}

// Update applies a sparse patch to one of the caller's own prompts and
// returns its id. A global prompt, or another user's prompt, is NotFound
// here even though List returns it.
func (s *PromptService) Update(ctx context.Context, id string, patch Patch) (string, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return "", authErr
	}

	fields, err := promptPatchFields(patch)
	if err != nil {
		return "", err
	}

	prompt, findErr := s.Store.FindOwned(ctx, id, userID)
	if findErr != nil {
		return "", findErr
	}
	if prompt == nil {
		return "", errNotFound("Prompt")
	}

	fields["updated_at"] = s.Now().UTC()
	if updateErr := s.Store.UpdateOwned(ctx, id, userID, fields); updateErr != nil {
		return "", updateErr
	}
	return id, nil
}

// List returns the prompts visible to the caller: their own plus global
// ones, newest first. Inactive prompts are excluded unless includeInactive.
func (s *PromptService) List(ctx context.Context, includeInactive bool) (*PromptList, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return nil, authErr
	}

	items, err := s.Store.ListVisible(ctx, userID, includeInactive)
	if err != nil {
		return nil, err
	}
	return &PromptList{Items: items, Total: len(items)}, nil
}

// promptPatchFields validates the present patch keys and converts them into
// store fields. title and prompt_text are required fields, so an explicit
// null is rejected rather than applied.
func promptPatchFields(patch Patch) (store.Fields, error) {
	fields := store.Fields{}

	if patch.Has("title") {
		title, err := patch.String("title")
		if err != nil {
			return nil, errValidation("title must be a string")
		}
		if title == nil {
			return nil, errValidation("title cannot be null")
		}
		trimmed, vErr := trimmedBounded("title", *title, maxTitleLen)
		if vErr != nil {
			return nil, vErr
		}
		fields["title"] = trimmed
	}

	if patch.Has("prompt_text") {
		promptText, err := patch.String("prompt_text")
		if err != nil {
			return nil, errValidation("prompt_text must be a string")
		}
		if promptText == nil {
			return nil, errValidation("prompt_text cannot be null")
		}
		trimmed, vErr := trimmedBounded("prompt_text", *promptText, maxPromptTextLen)
		if vErr != nil {
			return nil, vErr
		}
		fields["prompt_text"] = trimmed
	}

	if patch.Has("category") {
		category, err := patch.String("category")
		if err != nil {
			return nil, errValidation("category must be a string")
		}
		if category == nil {
			fields["category"] = nil
		} else {
			trimmed, vErr := trimmedBounded("category", *category, maxCategoryLen)
			if vErr != nil {
				return nil, vErr
			}
			fields["category"] = trimmed
		}
	}

	if patch.Has("is_active") {
		isActive, err := patch.Bool("is_active")
		if err != nil {
			return nil, errValidation("is_active must be a boolean")
		}
		if isActive == nil {
			return nil, errValidation("is_active cannot be null")
		}
		fields["is_active"] = *isActive
	}

	return fields, nil
}
