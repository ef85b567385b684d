package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	streakout "zenstreak/internal/modules/streak/adapter/out"
	"zenstreak/internal/modules/streak/domain"
	"zenstreak/internal/modules/streak/service"
	"zenstreak/internal/platform/clock"
	"zenstreak/internal/platform/kv"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}

type failingKV struct {
	kv.Store
	failGet, failSet, failDelete bool
}

func (f failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("disk on fire")
	}
	return f.Store.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func (f failingKV) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("read-only")
	}
	return f.Store.Delete(ctx, key)
}

func newService(store kv.Store, clk clock.Clock, log *zap.Logger) *service.StreakService {
	return service.NewStreakService(clk, streakout.NewKVRecordStore(store), streakout.NewKVMilestoneStore(store), log)
}

func start() *movableClock {
	return &movableClock{now: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func TestFreshStoreCheckin(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	svc := newService(store, start(), nil)
	ctx := context.Background()

	initial := svc.Load(ctx)
	if initial.CurrentStreak != 0 || initial.TotalSessions != 0 || len(initial.Checkins) != 0 {
		t.Fatalf("expected zero record, got %+v", initial)
	}
	if svc.HasCheckedInToday(initial) {
		t.Fatalf("fresh record must not be checked in")
	}

	out := svc.RecordCheckin(ctx, "mindfulness", 5)
	if !out.Recorded {
		t.Fatalf("expected check-in to be recorded")
	}
	r := out.Record
	if r.TotalSessions != 1 || r.CurrentStreak != 1 || r.LongestStreak != 1 {
		t.Fatalf("expected 1/1/1, got %d/%d/%d", r.TotalSessions, r.CurrentStreak, r.LongestStreak)
	}
	entry := r.Checkins["2026-03-10"]
	if !entry.Meditated || entry.Type != "mindfulness" || entry.Duration != 5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !svc.HasCheckedInToday(r) {
		t.Fatalf("expected checked in today")
	}
	if diff := cmp.Diff(r, svc.Load(ctx)); diff != "" {
		t.Fatalf("load after check-in differs (-returned +loaded):\n%s", diff)
	}
}

func TestSameDayCheckinIsIdempotent(t *testing.T) {
	t.Parallel()
	svc := newService(kv.NewMemoryStore(), start(), nil)
	ctx := context.Background()
	first := svc.RecordCheckin(ctx, "mindfulness", 5)
	second := svc.RecordCheckin(ctx, "breathing", 30)
	if second.Recorded || second.Milestone != nil {
		t.Fatalf("second check-in must be a no-op: %+v", second)
	}
	if diff := cmp.Diff(first.Record, second.Record); diff != "" {
		t.Fatalf("record changed (-first +second):\n%s", diff)
	}
}

func TestStreakAcrossDaysAndGap(t *testing.T) {
	t.Parallel()
	clk := start()
	svc := newService(kv.NewMemoryStore(), clk, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.RecordCheckin(ctx, "mindfulness", 5)
		clk.advance(1)
	}
	held := svc.Load(ctx)
	if held.CurrentStreak != 3 {
		t.Fatalf("expected streak held at 3 before today's check-in, got %d", held.CurrentStreak)
	}
	if svc.HasCheckedInToday(held) {
		t.Fatalf("today not checked in yet")
	}

	clk.advance(1)
	broken := svc.Load(ctx)
	if broken.CurrentStreak != 0 || broken.LongestStreak != 3 {
		t.Fatalf("expected broken streak 0 with longest 3, got %d/%d", broken.CurrentStreak, broken.LongestStreak)
	}

	out := svc.RecordCheckin(ctx, "walking", 10)
	if out.Record.CurrentStreak != 1 || out.Record.LongestStreak != 3 || out.Record.TotalSessions != 4 {
		t.Fatalf("expected 1/3/4 after gap, got %d/%d/%d", out.Record.CurrentStreak, out.Record.LongestStreak, out.Record.TotalSessions)
	}
}

func TestResetAllYieldsZeroRecord(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	svc := newService(store, start(), nil)
	ctx := context.Background()
	svc.RecordCheckin(ctx, "mindfulness", 5)

	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	r := svc.Load(ctx)
	if r.CurrentStreak != 0 || r.LongestStreak != 0 || r.TotalSessions != 0 || len(r.Checkins) != 0 || r.LastCheckIn != "" {
		t.Fatalf("expected zero record after reset, got %+v", r)
	}
	if _, err := store.Get(ctx, domain.MilestoneKey); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected milestone marker cleared, got %v", err)
	}
}

func TestResetAllReportsDeleteFailure(t *testing.T) {
	t.Parallel()
	store := failingKV{Store: kv.NewMemoryStore(), failDelete: true}
	svc := newService(store, start(), nil)
	if err := svc.ResetAll(context.Background()); err == nil {
		t.Fatalf("expected reset error")
	}
}

func TestCorruptDataFallsBackToDefaultsWithWarning(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, domain.RecordKey, []byte("{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)
	svc := newService(store, start(), zap.New(core))

	r := svc.Load(ctx)
	if r.TotalSessions != 0 || len(r.Checkins) != 0 {
		t.Fatalf("expected defaults, got %+v", r)
	}
	if logs.FilterMessage("streak record unreadable, starting fresh").Len() != 1 {
		t.Fatalf("expected one warn entry, got %v", logs.All())
	}
}

func TestReadFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	svc := newService(failingKV{Store: kv.NewMemoryStore(), failGet: true}, start(), nil)
	out := svc.RecordCheckin(context.Background(), "mindfulness", 5)
	if !out.Recorded || out.Record.TotalSessions != 1 {
		t.Fatalf("expected check-in on defaults, got %+v", out)
	}
}

func TestWriteFailureReturnsUpdatedRecord(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.ErrorLevel)
	svc := newService(failingKV{Store: kv.NewMemoryStore(), failSet: true}, start(), zap.New(core))
	ctx := context.Background()

	out := svc.RecordCheckin(ctx, "mindfulness", 5)
	if !out.Recorded || out.Record.CurrentStreak != 1 {
		t.Fatalf("expected in-memory record, got %+v", out)
	}
	if logs.FilterMessage("persist streak record").Len() != 1 {
		t.Fatalf("expected error log for failed write, got %v", logs.All())
	}
	if svc.Load(ctx).TotalSessions != 0 {
		t.Fatalf("nothing should have been persisted")
	}
}

func TestLoadMigratesLegacyPayload(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	ctx := context.Background()
	legacy := `{"currentStreak":1,"longestStreak":1,"totalSessions":7,"checkins":{"2026-03-09":{"meditated":true,"type":"mantra","duration":5}}}`
	if err := store.Set(ctx, domain.RecordKey, []byte(legacy)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := newService(store, start(), nil).Load(ctx)
	if r.SchemaVersion != domain.SchemaVersion || r.TotalSessions != 1 || r.LastCheckIn != "2026-03-09" {
		t.Fatalf("unexpected migrated record: %+v", r)
	}
}

func TestBadEntryDoesNotCostHistory(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	ctx := context.Background()
	seeded := `{"schemaVersion":1,"currentStreak":3,"longestStreak":9,"totalSessions":3,"lastCheckIn":"2026-03-09","checkins":{` +
		`"2026-03-07":{"meditated":true,"type":"breathing","duration":5,"timestamp":"2026-03-07T07:00:00Z"},` +
		`"2026-03-08":{"meditated":true,"type":"mantra","duration":"10","timestamp":"Mon Mar 09 2026"},` +
		`"2026-03-09":{"meditated":true,"type":"mindfulness","duration":5,"timestamp":"2026-03-09T07:00:00Z"}}}`
	if err := store.Set(ctx, domain.RecordKey, []byte(seeded)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)
	svc := newService(store, start(), zap.New(core))

	if r := svc.Load(ctx); r.TotalSessions != 3 || r.LongestStreak != 9 {
		t.Fatalf("expected seeded history to load, got %+v", r)
	}
	out := svc.RecordCheckin(ctx, "mindfulness", 5)
	if !out.Recorded {
		t.Fatalf("expected check-in to be recorded")
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no warnings, got %v", logs.All())
	}

	raw, err := store.Get(ctx, domain.RecordKey)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	persisted, err := domain.Decode(raw)
	if err != nil {
		t.Fatalf("decode persisted: %v", err)
	}
	want := []string{"2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"}
	if diff := cmp.Diff(want, persisted.Dates()); diff != "" {
		t.Fatalf("persisted dates mismatch (-want +got):\n%s", diff)
	}
	if persisted.TotalSessions != 4 || persisted.CurrentStreak != 4 || persisted.LongestStreak != 9 {
		t.Fatalf("expected total=4 current=4 longest=9, got %d/%d/%d", persisted.TotalSessions, persisted.CurrentStreak, persisted.LongestStreak)
	}
	if got := persisted.Checkins["2026-03-08"].Duration; got != 10 {
		t.Fatalf("expected repaired duration 10, got %v", got)
	}
}

func TestMilestoneCelebratedOnce(t *testing.T) {
	t.Parallel()
	clk := start()
	store := kv.NewMemoryStore()
	svc := newService(store, clk, nil)
	ctx := context.Background()

	var celebrated []int
	for i := 0; i < 8; i++ {
		out := svc.RecordCheckin(ctx, "mindfulness", 5)
		if out.Milestone != nil {
			celebrated = append(celebrated, out.Milestone.Days)
		}
		clk.advance(1)
	}
	if diff := cmp.Diff([]int{7}, celebrated); diff != "" {
		t.Fatalf("celebrations mismatch (-want +got):\n%s", diff)
	}
	raw, err := store.Get(ctx, domain.MilestoneKey)
	if err != nil || string(raw) != "7" {
		t.Fatalf("expected persisted milestone 7, got %q (%v)", raw, err)
	}
}

func TestConcurrentCheckinsRecordOnce(t *testing.T) {
	t.Parallel()
	svc := newService(kv.NewMemoryStore(), start(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	recorded := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorded <- svc.RecordCheckin(ctx, "mindfulness", 5).Recorded
		}()
	}
	wg.Wait()
	close(recorded)
	count := 0
	for ok := range recorded {
		if ok {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one recorded check-in, got %d", count)
	}
	if svc.Load(ctx).TotalSessions != 1 {
		t.Fatalf("expected one session persisted")
	}
}
