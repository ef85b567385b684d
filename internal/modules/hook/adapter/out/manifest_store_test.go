package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	hookout "zenstreak/internal/modules/hook/adapter/out"
	"zenstreak/internal/modules/hook/domain"
)

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	manifests, err := hookout.NewFileManifestStore(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := `[
  {
    "name": "share",
    "version": "1.0.0",
    "binary": "bin/share",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "events": ["checkin", "milestone"]
  }
]`
	if err := os.WriteFile(filepath.Join(dir, "hooks.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write hooks.json: %v", err)
	}
	manifests, err := hookout.NewFileManifestStore(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	if manifests[0].Binary != filepath.Join(dir, "bin", "share") {
		t.Fatalf("expected binary under hooks dir, got %s", manifests[0].Binary)
	}
	if !manifests[0].Subscribes(domain.EventMilestone) {
		t.Fatalf("expected milestone subscription")
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := `[{"name":"share","version":"1","binary":"x","sha256":"","enabled":true,"events":["checkin"],"capabilities":["command"]}]`
	if err := os.WriteFile(filepath.Join(dir, "hooks.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write hooks.json: %v", err)
	}
	if _, err := hookout.NewFileManifestStore(dir).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
