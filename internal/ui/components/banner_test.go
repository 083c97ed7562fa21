// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestBannerLifecycle(t *testing.T) {
	var b Banner
	if b.Visible() {
		t.Error("zero banner should be hidden")
	}

	cmd := b.Show(BannerSuccess, "saved")
	if cmd == nil {
		t.Fatal("Show must return an expiry command")
	}
	if !b.Visible() {
		t.Error("banner should be visible after Show")
	}
	if !strings.Contains(b.View(), "saved") {
		t.Errorf("view missing message: %q", b.View())
	}

	firstID := b.id

	// Replace the banner before the first expiry fires.
	b.Show(BannerError, "failed")

	// The stale expiry must not clear the newer banner.
	b.Update(BannerExpiredMsg{ID: firstID})
	if !b.Visible() {
		t.Error("stale expiry cleared a newer banner")
	}

	// The matching expiry does clear it.
	b.Update(BannerExpiredMsg{ID: b.id})
	if b.Visible() {
		t.Error("banner should clear on its own expiry")
	}
	if b.View() != "" {
		t.Errorf("hidden banner should render empty, got %q", b.View())
	}
}
