package config

import "testing"

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROUND_SECONDS", "45")
	t.Setenv("REVEAL_PAUSE_SECONDS", "5")
	t.Setenv("CLIP_SEND_SECONDS", "badvalue")
	t.Setenv("ADMIN_IDS", "123, 456 ,")

	cfg := Load()

	if cfg.RoundSeconds != 45 {
		t.Errorf("RoundSeconds = %d, want 45", cfg.RoundSeconds)
	}
	if cfg.RevealPauseSecs != 5 {
		t.Errorf("RevealPauseSecs = %d, want 5", cfg.RevealPauseSecs)
	}
	// unparsable value falls back to the default
	if cfg.ClipSendSecs != 10 {
		t.Errorf("ClipSendSecs = %d, want fallback 10", cfg.ClipSendSecs)
	}
	if len(cfg.AdminIDs) != 2 {
		t.Fatalf("AdminIDs = %v, want two entries", cfg.AdminIDs)
	}
	if !cfg.IsAdmin("456") || cfg.IsAdmin("789") {
		t.Errorf("IsAdmin lookup wrong for AdminIDs %v", cfg.AdminIDs)
	}
}
