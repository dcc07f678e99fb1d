package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
)

// MemEntries is an in-memory JournalEntry store with the same scoping rules
// as MongoEntries. It backs the service tests; nothing in the server wires it.
type MemEntries struct {
	mu      sync.Mutex
	entries map[string]models.JournalEntry
}

func NewMemEntries() *MemEntries {
	return &MemEntries{entries: make(map[string]models.JournalEntry)}
}

func (s *MemEntries) Insert(ctx context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = *entry
	return nil
}

func (s *MemEntries) FindOwned(ctx context.Context, id, userID string) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || entry.UserID != userID {
		return nil, nil
	}
	copied := entry
	return &copied, nil
}

func (s *MemEntries) UpdateOwned(ctx context.Context, id, userID string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || entry.UserID != userID {
		return nil
	}
	for k, v := range fields {
		applyEntryField(&entry, k, v)
	}
	s.entries[id] = entry
	return nil
}

func (s *MemEntries) DeleteOwned(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if ok && entry.UserID == userID {
		delete(s.entries, id)
	}
	return nil
}

func (s *MemEntries) ListOwned(ctx context.Context, userID string, limit, offset int64) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := make([]models.JournalEntry, 0)
	for _, entry := range s.entries {
		if entry.UserID == userID {
			owned = append(owned, entry)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].EntryDate.After(owned[j].EntryDate)
	})
	if offset >= int64(len(owned)) {
		return []models.JournalEntry{}, nil
	}
	owned = owned[offset:]
	if limit < int64(len(owned)) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (s *MemEntries) CountOwned(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, entry := range s.entries {
		if entry.UserID == userID {
			total++
		}
	}
	return total, nil
}

func applyEntryField(entry *models.JournalEntry, key string, value interface{}) {
	switch key {
	case "entry_date":
		if t, ok := value.(time.Time); ok {
			entry.EntryDate = t
		}
	case "mood_score":
		entry.MoodScore = nil
		if n, ok := value.(int); ok {
			entry.MoodScore = &n
		}
	case "mood_label":
		entry.MoodLabel = stringField(value)
	case "tags":
		entry.Tags = stringField(value)
	case "title":
		entry.Title = stringField(value)
	case "body":
		entry.Body = stringField(value)
	case "prompt_id":
		entry.PromptID = stringField(value)
	case "updated_at":
		if t, ok := value.(time.Time); ok {
			entry.UpdatedAt = t
		}
	}
}

func stringField(value interface{}) *string {
	if s, ok := value.(string); ok {
		return &s
	}
	return nil
}

// MemPrompts is the in-memory counterpart of MongoPrompts.
type MemPrompts struct {
	mu      sync.Mutex
	prompts map[string]models.Prompt
}

func NewMemPrompts() *MemPrompts {
	return &MemPrompts{prompts: make(map[string]models.Prompt)}
}

func (s *MemPrompts) Insert(ctx context.Context, prompt *models.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts[prompt.ID] = *prompt
	return nil
}

func (s *MemPrompts) FindOwned(ctx context.Context, id, userID string) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prompt, ok := s.prompts[id]
	if !ok || prompt.UserID == nil || *prompt.UserID != userID {
		return nil, nil
	}
	copied := prompt
	return &copied, nil
}

func (s *MemPrompts) UpdateOwned(ctx context.Context, id, userID string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prompt, ok := s.prompts[id]
	if !ok || prompt.UserID == nil || *prompt.UserID != userID {
		return nil
	}
	for k, v := range fields {
		applyPromptField(&prompt, k, v)
	}
	s.prompts[id] = prompt
	return nil
}

func (s *MemPrompts) ListVisible(ctx context.Context, userID string, includeInactive bool) ([]models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	visible := make([]models.Prompt, 0)
	for _, prompt := range s.prompts {
		if prompt.UserID != nil && *prompt.UserID != userID {
			continue
		}
		if !includeInactive && !prompt.IsActive {
			continue
		}
		visible = append(visible, prompt)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

func (s *MemPrompts) CountSystem(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, prompt := range s.prompts {
		if prompt.IsSystem {
			total++
		}
	}
	return total, nil
}

func applyPromptField(prompt *models.Prompt, key string, value interface{}) {
	switch key {
	case "title":
		if s, ok := value.(string); ok {
			prompt.Title = s
		}
	case "prompt_text":
		if s, ok := value.(string); ok {
			prompt.PromptText = s
		}
	case "category":
		prompt.Category = stringField(value)
	case "is_active":
		if b, ok := value.(bool); ok {
			prompt.IsActive = b
		}
	case "updated_at":
		if t, ok := value.(time.Time); ok {
			prompt.UpdatedAt = t
		}
	}
}
