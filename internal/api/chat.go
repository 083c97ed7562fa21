// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Chat resource client: message history and the send endpoint
// against /api/chat.
package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/knox-tui/internal/model"
)

// =============================================================================
// RESPONSE SHAPES
// =============================================================================

// historyResponse is the body of the history endpoint.
type historyResponse struct {
	Messages []model.Message `json:"messages"`
}

// sendResponse is the body of a successful send.
type sendResponse struct {
	AIReply string `json:"aiReply"`
}

// sendRequest is the body posted to the send endpoint.
type sendRequest struct {
	CharacterID string `json:"characterId"`
	Message     string `json:"message"`
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// History fetches the persisted messages of a conversation. The backend
// keys conversations by character for the signed-in user, so the character
// ID doubles as the conversation ID.
func (c *Client) History(ctx context.Context, conversationID string) ([]model.Message, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/"+conversationID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Send posts a user message for a character and returns the AI reply text.
// Requires an authenticated session; the caller enforces the auth gate
// before dispatch so no request is issued for anonymous users.
func (c *Client) Send(ctx context.Context, characterID, message string) (string, error) {
	body := sendRequest{CharacterID: characterID, Message: message}

	var resp sendResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/send", body, &resp); err != nil {
		return "", err
	}
	return resp.AIReply, nil
}
