/* Copyright 2025 Inkpot Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ai provides the text explanation and study material generation
// service on top of the server's AI endpoints
package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/inkpot/inkpot/pkg/cli/client"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// defaultInstructions is the instruction set sent with every explanation
// request
const defaultInstructions = "Provide a concise explanation in 2-3 sentences. Include a simple, practical example to illustrate the concept. Keep it simple and easy to understand."

// explainCacheTTL bounds how long an explanation for the same text is reused
// instead of re-requested
const explainCacheTTL = 10 * time.Minute

// ErrEmptyText is returned when an AI operation is attempted on blank text
var ErrEmptyText = errors.New("text is empty")

// Service wraps the server's AI endpoints. Explanations are cached by text
// so that repeatedly explaining the same selection does not re-bill the
// server.
type Service struct {
	api   *client.Client
	cache *gocache.Cache
}

// NewService returns an AI service backed by the given client
func NewService(api *client.Client) *Service {
	return &Service{
		api:   api,
		cache: gocache.New(explainCacheTTL, explainCacheTTL),
	}
}

// cacheKey derives the cache key for an explanation request. Text can be
// arbitrarily large, so the key is a digest rather than the text itself.
func cacheKey(text, instructions string) string {
	h := sha256.Sum256([]byte(instructions + "\x00" + text))
	return hex.EncodeToString(h[:])
}

// Explain returns an explanation of the given text using the default
// instruction set
func (s *Service) Explain(token, text string) (string, error) {
	return s.ExplainWith(token, text, defaultInstructions)
}

// ExplainWith returns an explanation of the given text using a custom
// instruction set
func (s *Service) ExplainWith(token, text, instructions string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	key := cacheKey(text, instructions)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(string), nil
	}

	explanation, err := s.api.ExplainText(token, text, instructions)
	if err != nil {
		return "", errors.Wrap(err, "requesting an explanation")
	}

	s.cache.SetDefault(key, explanation)

	return explanation, nil
}

// GenerateFlashcards synthesizes flashcards from the given text
func (s *Service) GenerateFlashcards(token, text string) ([]client.Flashcard, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	cards, err := s.api.GenerateNotecards(token, text)
	if err != nil {
		return nil, errors.Wrap(err, "requesting flashcards")
	}

	return cards, nil
}

// GenerateQuiz synthesizes quiz questions from the given text
func (s *Service) GenerateQuiz(token, text string) ([]client.QuizQuestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	questions, err := s.api.GenerateQuiz(token, text)
	if err != nil {
		return nil, errors.Wrap(err, "requesting a quiz")
	}

	return questions, nil
}
