package cache

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/questionbank/internal/model"
)

// QuestionStore keeps the parsed question list under one fixed key
type QuestionStore struct {
	cache Cache
	key   string
}

// NewQuestionStore wraps c. An empty key falls back to model.DefaultCacheKey.
func NewQuestionStore(c Cache, key string) *QuestionStore {
	if key == "" {
		key = model.DefaultCacheKey
	}
	return &QuestionStore{cache: c, key: key}
}

// Get returns the stored list. A missing or undecodable entry is a miss.
func (s *QuestionStore) Get() ([]model.Question, bool) {
	data, found := s.cache.Get(s.key)
	if !found {
		return nil, false
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

// Set replaces the stored list
func (s *QuestionStore) Set(questions []model.Question) error {
	if questions == nil {
		questions = []model.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	if err := s.cache.Set(s.key, data); err != nil {
		return fmt.Errorf("store questions: %w", err)
	}
	return nil
}

// Delete drops the stored list
func (s *QuestionStore) Delete() error {
	return s.cache.Delete(s.key)
}

// Key returns the cache key the list is stored under
func (s *QuestionStore) Key() string {
	return s.key
}
