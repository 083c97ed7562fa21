// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// SELF-CLEARING BANNER
// =============================================================================

// BannerKind is the visual treatment of a banner.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

// BannerDuration is how long a banner stays on screen before it clears
// itself.
const BannerDuration = 3 * time.Second

// BannerExpiredMsg signals that a banner's display window ended. The ID
// lets the owner ignore expiry ticks from banners it already replaced.
type BannerExpiredMsg struct {
	ID int
}

// Banner is a transient feedback line shown after an operation. It does
// not block input; it simply disappears after BannerDuration.
type Banner struct {
	id      int
	kind    BannerKind
	message string
	visible bool
}

var bannerCounter int

// Show replaces the banner content and returns the command that will
// clear it after the display window.
func (b *Banner) Show(kind BannerKind, message string) tea.Cmd {
	bannerCounter++
	b.id = bannerCounter
	b.kind = kind
	b.message = message
	b.visible = true

	id := b.id
	return tea.Tick(BannerDuration, func(time.Time) tea.Msg {
		return BannerExpiredMsg{ID: id}
	})
}

// Update clears the banner when its own expiry tick arrives.
func (b *Banner) Update(msg tea.Msg) {
	if expired, ok := msg.(BannerExpiredMsg); ok && expired.ID == b.id {
		b.visible = false
	}
}

// Visible reports whether the banner is currently shown.
func (b *Banner) Visible() bool {
	return b.visible
}

// View renders the banner, or an empty string when hidden.
func (b *Banner) View() string {
	if !b.visible {
		return ""
	}
	switch b.kind {
	case BannerSuccess:
		return styles.RenderSuccess(b.message)
	case BannerError:
		return styles.RenderError(b.message)
	default:
		return styles.RenderInfo(b.message)
	}
}
