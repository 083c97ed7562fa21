// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the knox client.
package model

import "strings"

// =============================================================================
// CHARACTER TYPE
// =============================================================================

// Character represents a persona profile created on the backend.
// Created via the add endpoint, mutated via edit (partial field replacement),
// removed via delete.
type Character struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Greeting          string `json:"greeting"`
	PersonalityPrompt string `json:"personalityPrompt"`
	Avatar            string `json:"avatar,omitempty"`
	Category          string `json:"category"`
	Creator           string `json:"creator,omitempty"`
	IsPublic          bool   `json:"isPublic"`
}

// FallbackName is used when a character record has no name.
const FallbackName = "your companion"

// DisplayName returns the character's name, or a fallback when unset.
func (c *Character) DisplayName() string {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return FallbackName
	}
	return c.Name
}

// DisplayGreeting returns the greeting shown as the opening transcript entry.
// A character with no greeting gets a synthesized default so the first entry
// is never empty at render time.
func (c *Character) DisplayGreeting() string {
	if c != nil && strings.TrimSpace(c.Greeting) != "" {
		return c.Greeting
	}
	return "Hello! I am " + c.DisplayName() + "."
}

// =============================================================================
// CHARACTER FORM
// =============================================================================

// CharacterForm holds the fields submitted to the add and edit endpoints.
// AvatarPath is a local file path uploaded as a multipart part when set.
type CharacterForm struct {
	Name              string
	Description       string
	Greeting          string
	PersonalityPrompt string
	Category          string
	Creator           string
	IsPublic          bool
	AvatarPath        string
}

// FromCharacter pre-fills a form from an existing character for editing.
func FromCharacter(c *Character) CharacterForm {
	if c == nil {
		return CharacterForm{IsPublic: true}
	}
	return CharacterForm{
		Name:              c.Name,
		Description:       c.Description,
		Greeting:          c.Greeting,
		PersonalityPrompt: c.PersonalityPrompt,
		Category:          c.Category,
		Creator:           c.Creator,
		IsPublic:          c.IsPublic,
	}
}

// Validate checks the minimum fields the backend requires.
func (f *CharacterForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// =============================================================================
// ERRORS
// =============================================================================

// ModelError represents a validation error on a domain type.
// It implements the error interface and can be compared using errors.Is.
type ModelError struct {
	Message string
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing model errors.
func (e *ModelError) Is(target error) bool {
	t, ok := target.(*ModelError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// ErrNameRequired is returned when a character form has no name.
var ErrNameRequired = &ModelError{Message: "character name is required"}
