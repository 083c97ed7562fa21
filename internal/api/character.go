// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// character.go - Character resource client: list, fetch, create, edit, and
// delete against /api/character.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jeranaias/knox-tui/internal/model"
)

// =============================================================================
// RESPONSE SHAPES
// =============================================================================

// charactersResponse is the body of the list endpoint.
type charactersResponse struct {
	Characters []model.Character `json:"characters"`
}

// characterResponse is the body of the single-character endpoint.
type characterResponse struct {
	Character *model.Character `json:"character"`
}

// =============================================================================
// CHARACTER OPERATIONS
// =============================================================================

// ListCharacters fetches all characters visible to the caller.
func (c *Client) ListCharacters(ctx context.Context) ([]model.Character, error) {
	var resp charactersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/character/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Characters, nil
}

// GetCharacter fetches a single character by ID.
func (c *Client) GetCharacter(ctx context.Context, id string) (*model.Character, error) {
	var resp characterResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/character/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Character, nil
}

// CreateCharacter creates a character from a form, uploading the avatar
// file when one is set.
func (c *Client) CreateCharacter(ctx context.Context, form model.CharacterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	fields := map[string]string{
		"name":              form.Name,
		"description":       form.Description,
		"greeting":          form.Greeting,
		"personalityPrompt": form.PersonalityPrompt,
		"category":          form.Category,
		"creator":           form.Creator,
		"isPublic":          strconv.FormatBool(form.IsPublic),
	}

	return c.doMultipart(ctx, http.MethodPost, "/api/character/add", fields, "avatar", form.AvatarPath, nil)
}

// EditCharacter applies a partial update to an existing character.
// The edit endpoint takes JSON and does not change the avatar.
func (c *Client) EditCharacter(ctx context.Context, id string, form model.CharacterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	body := map[string]any{
		"name":              form.Name,
		"description":       form.Description,
		"greeting":          form.Greeting,
		"personalityPrompt": form.PersonalityPrompt,
		"category":          form.Category,
		"isPublic":          form.IsPublic,
	}

	return c.doJSON(ctx, http.MethodPut, "/api/character/edit/"+id, body, nil)
}

// DeleteCharacter removes a character by ID.
func (c *Client) DeleteCharacter(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/character/"+id, nil, nil)
}
