package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
	"github.com/AnshRaj112/moodlog-backend/internal/store"
)

const (
	// EntryDateFormat is the wire format for entry_date.
	EntryDateFormat = "2006-01-02"

	maxTitleLen     = 120
	maxMoodLabelLen = 60
	maxTagsLen      = 500
	minMoodScore    = 1
	maxMoodScore    = 10

	defaultPageSize = 20
	maxPageSize     = 100
)

// EntryStore is the persistence contract for journal entries. FindOwned
// returns (nil, nil) for both "absent" and "owned by someone else" so the
// service cannot leak which of the two it was.
type EntryStore interface {
	Insert(ctx context.Context, entry *models.JournalEntry) error
	FindOwned(ctx context.Context, id, userID string) (*models.JournalEntry, error)
	UpdateOwned(ctx context.Context, id, userID string, fields store.Fields) error
	DeleteOwned(ctx context.Context, id, userID string) error
	ListOwned(ctx context.Context, userID string, limit, offset int64) ([]models.JournalEntry, error)
	CountOwned(ctx context.Context, userID string) (int64, error)
}

// EntryService implements CRUD and listing over a user's journal entries.
// Every operation resolves the caller from the context first and fails closed
// when no identity is present.
type EntryService struct {
	Store EntryStore
	NewID func() string
	Now   func() time.Time
}

func NewEntryService(entries EntryStore) *EntryService {
	return &EntryService{
		Store: entries,
		NewID: uuid.NewString,
		Now:   time.Now,
	}
}

// CreateEntryInput is the payload for creating an entry. Pointer fields are
// optional; entry_date defaults to the current time when empty.
type CreateEntryInput struct {
	EntryDate string  `json:"entry_date"`
	MoodScore *int    `json:"mood_score"`
	MoodLabel *string `json:"mood_label"`
	Tags      *string `json:"tags"`
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	PromptID  *string `json:"prompt_id"`
}

// EntryPage is one page of a user's entries plus the total count of all
// their entries.
type EntryPage struct {
	Items    []models.JournalEntry `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// Create validates the input, stamps server-assigned fields and persists the
// entry. The owner is always the caller; any user_id in the payload is
// ignored upstream.
func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*models.JournalEntry, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return nil, authErr
	}

	now := s.Now().UTC()
	entryDate := now
	if input.EntryDate != "" {
		parsed, err := time.Parse(EntryDateFormat, input.EntryDate)
		if err != nil {
			return nil, errValidation("entry_date must be a date in the form YYYY-MM-DD")
		}
		entryDate = parsed.UTC()
	}

	entry := models.JournalEntry{
		ID:        s.NewID(),
		UserID:    userID,
		EntryDate: entryDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.MoodScore != nil {
		if err := validMoodScore(*input.MoodScore); err != nil {
			return nil, err
		}
		entry.MoodScore = input.MoodScore
	}
	if input.MoodLabel != nil {
		label, err := trimmedBounded("mood_label", *input.MoodLabel, maxMoodLabelLen)
		if err != nil {
			return nil, err
		}
		entry.MoodLabel = &label
	}
	if input.Tags != nil {
		if err := nonBlank("tags", *input.Tags, maxTagsLen); err != nil {
			return nil, err
		}
		entry.Tags = input.Tags
	}
	if input.Title != nil {
		title, err := trimmedBounded("title", *input.Title, maxTitleLen)
		if err != nil {
			return nil, err
		}
		entry.Title = &title
	}
	if input.Body != nil {
		if err := nonBlank("body", *input.Body, 0); err != nil {
			return nil, err
		}
		entry.Body = input.Body
	}
	if input.PromptID != nil {
		if err := nonBlank("prompt_id", *input.PromptID, 0); err != nil {
			return nil, err
		}
		entry.PromptID = input.PromptID
	}

	if err := s.Store.Insert(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get returns the caller's entry, or NotFound when it is absent or owned by
// another user.
func (s *EntryService) Get(ctx context.Context, id string) (*models.JournalEntry, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return nil, authErr
	}

	entry, err := s.Store.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errNotFound("Journal entry")
	}
	return entry, nil
}

// Update applies a sparse patch to the caller's entry and returns its id.
// Only keys present in the patch are touched; updated_at is always
// refreshed. The write re-filters by (id, owner), so the load/write gap
// cannot hand the record to the wrong user.
func (s *EntryService) Update(ctx context.Context, id string, patch Patch) (string, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return "", authErr
	}

	fields, err := entryPatchFields(patch)
	if err != nil {
		return "", err
	}

	entry, findErr := s.Store.FindOwned(ctx, id, userID)
	if findErr != nil {
		return "", findErr
	}
	if entry == nil {
		return "", errNotFound("Journal entry")
	}

	fields["updated_at"] = s.Now().UTC()
	if updateErr := s.Store.UpdateOwned(ctx, id, userID, fields); updateErr != nil {
		return "", updateErr
	}
	return id, nil
}

// Delete removes the caller's entry. NotFound when absent or foreign-owned.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return authErr
	}

	entry, err := s.Store.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if entry == nil {
		return errNotFound("Journal entry")
	}
	return s.Store.DeleteOwned(ctx, id, userID)
}

// List returns one page of the caller's entries ordered by entry_date
// descending. Total counts the full owned set, not the page.
func (s *EntryService) List(ctx context.Context, page, pageSize int) (*EntryPage, error) {
	userID, authErr := requireUser(ctx)
	if authErr != nil {
		return nil, authErr
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if page < 1 {
		return nil, errValidation("page must be at least 1")
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, errValidation("page_size must be between 1 and 100")
	}

	total, err := s.Store.CountOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	offset := int64(page-1) * int64(pageSize)
	items, err := s.Store.ListOwned(ctx, userID, int64(pageSize), offset)
	if err != nil {
		return nil, err
	}

	return &EntryPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// entryPatchFields validates the present patch keys and converts them into
// store fields. Unknown keys are ignored.
func entryPatchFields(patch Patch) (store.Fields, error) {
	fields := store.Fields{}

	if patch.Has("entry_date") {
		raw, err := patch.String("entry_date")
		if err != nil {
			return nil, errValidation("entry_date must be a string")
		}
		if raw == nil {
			return nil, errValidation("entry_date cannot be null")
		}
		parsed, parseErr := time.Parse(EntryDateFormat, *raw)
		if parseErr != nil {
			return nil, errValidation("entry_date must be a date in the form YYYY-MM-DD")
		}
		fields["entry_date"] = parsed.UTC()
	}

	if patch.Has("mood_score") {
		score, err := patch.Int("mood_score")
		if err != nil {
			return nil, errValidation("mood_score must be an integer")
		}
		if score == nil {
			fields["mood_score"] = nil
		} else {
			if vErr := validMoodScore(*score); vErr != nil {
				return nil, vErr
			}
			fields["mood_score"] = *score
		}
	}

	if patch.Has("mood_label") {
		label, err := patch.String("mood_label")
		if err != nil {
			return nil, errValidation("mood_label must be a string")
		}
		if label == nil {
			fields["mood_label"] = nil
		} else {
			trimmed, vErr := trimmedBounded("mood_label", *label, maxMoodLabelLen)
			if vErr != nil {
				return nil, vErr
			}
			fields["mood_label"] = trimmed
		}
	}

	if patch.Has("tags") {
		tags, err := patch.String("tags")
		if err != nil {
			return nil, errValidation("tags must be a string")
		}
		if tags == nil {
			fields["tags"] = nil
		} else {
			if vErr := nonBlank("tags", *tags, maxTagsLen); vErr != nil {
				return nil, vErr
			}
			fields["tags"] = *tags
		}
	}

	if patch.Has("title") {
		title, err := patch.String("title")
		if err != nil {
			return nil, errValidation("title must be a string")
		}
		if title == nil {
			fields["title"] = nil
		} else {
			trimmed, vErr := trimmedBounded("title", *title, maxTitleLen)
			if vErr != nil {
				return nil, vErr
			}
			fields["title"] = trimmed
		}
	}

	if patch.Has("body") {
		body, err := patch.String("body")
		if err != nil {
			return nil, errValidation("body must be a string")
		}
		if body == nil {
			fields["body"] = nil
		} else {
			if vErr := nonBlank("body", *body, 0); vErr != nil {
				return nil, vErr
			}
			fields["body"] = *body
		}
	}

	if patch.Has("prompt_id") {
		promptID, err := patch.String("prompt_id")
		if err != nil {
			return nil, errValidation("prompt_id must be a string")
		}
		if promptID == nil {
			fields["prompt_id"] = nil
		} else {
			if vErr := nonBlank("prompt_id", *promptID, 0); vErr != nil {
				return nil, vErr
			}
			fields["prompt_id"] = *promptID
		}
	}

	return fields, nil
}

func validMoodScore(score int) *Error {
	if score < minMoodScore || score > maxMoodScore {
		return errValidation("mood_score must be between 1 and 10")
	}
	return nil
}

// trimmedBounded trims the value and enforces non-blank plus a length cap.
func trimmedBounded(field, value string, max int) (string, *Error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errValidation(field + " must not be empty")
	}
	if len(trimmed) > max {
		return "", errValidation(field + " is too long")
	}
	return trimmed, nil
}

// nonBlank enforces non-blank without trimming the stored value. A max of 0
// means unbounded.
func nonBlank(field, value string, max int) *Error {
	if strings.TrimSpace(value) == "" {
		return errValidation(field + " must not be empty")
	}
	if max > 0 && len(value) > max {
		return errValidation(field + " is too long")
	}
	return nil
}
