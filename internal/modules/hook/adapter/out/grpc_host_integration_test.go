package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	hookout "zenstreak/internal/modules/hook/adapter/out"
	"zenstreak/internal/modules/hook/domain"
)

func TestGRPCHostIntegrationSharePlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the share plugin")
	}
	binPath, checksum := buildSharePlugin(t)
	manifest := domain.Manifest{
		Name:    "share",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
		Events:  []domain.EventKind{domain.EventCheckin, domain.EventMilestone},
	}

	host := hookout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	meta, err := host.Describe(ctx, manifest)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if meta.Name != "share" || len(meta.Events) != 2 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	reply, err := host.Deliver(ctx, manifest, domain.Event{
		ID:             "evt-1",
		Kind:           domain.EventMilestone,
		Date:           "2026-03-10",
		Type:           "mindfulness",
		Duration:       10,
		CurrentStreak:  30,
		LongestStreak:  30,
		TotalSessions:  41,
		Milestone:      30,
		MilestoneTitle: "Serenity Keeper",
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if !strings.Contains(reply.Message, "30-day") || !strings.Contains(reply.Message, "Serenity Keeper") {
		t.Fatalf("unexpected share text: %q", reply.Message)
	}

	checkin, err := host.Deliver(ctx, manifest, domain.Event{ID: "evt-2", Kind: domain.EventCheckin, Date: "2026-03-10", CurrentStreak: 3})
	if err != nil {
		t.Fatalf("deliver checkin: %v", err)
	}
	if checkin.Message == "" {
		t.Fatalf("expected affirmation for check-in")
	}
}

func buildSharePlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "share-hook")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/share")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build share plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
