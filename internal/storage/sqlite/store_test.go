package sqlite

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/solo.space/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "solo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func sampleCampaign(now time.Time) storage.CampaignRecord {
	return storage.CampaignRecord{
		ID:          "camp-1",
		Name:        "The Sunken Vault",
		Seed:        math.MaxUint64 - 7,
		Sequence:    12,
		Tension:     5,
		SceneNumber: 2,
		SceneActive: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestPutGetCampaignRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 18, 0, 0, 0, time.UTC)
	input := sampleCampaign(now)
	if err := store.CommitScene(context.Background(), input, nil, nil); err != nil {
		t.Fatalf("put campaign: %v", err)
	}

	got, err := store.GetCampaign(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if got != input {
		t.Fatalf("campaign = %+v, want %+v", got, input)
	}

	input.Tension = 6
	input.SceneActive = false
	if err := store.CommitScene(context.Background(), input, nil, nil); err != nil {
		t.Fatalf("update campaign: %v", err)
	}
	got, err = store.GetCampaign(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("get updated campaign: %v", err)
	}
	if got.Tension != 6 || got.SceneActive {
		t.Fatalf("updated campaign = %+v", got)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetCampaign(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing campaign error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCommitSceneReplacesLists(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	campaign := sampleCampaign(time.Now())

	first := []storage.EntityRecord{
		{Key: "alyx", Name: "Alyx", Weight: 1},
		{Key: "borin", Name: "Borin", Weight: 3},
	}
	threads := []storage.EntityRecord{{Key: "find the heir", Name: "Find the heir", Weight: 2}}
	if err := store.CommitScene(ctx, campaign, first, threads); err != nil {
		t.Fatalf("commit scene: %v", err)
	}

	second := []storage.EntityRecord{
		{Key: "borin", Name: "Borin", Weight: 3},
		{Key: "cass", Name: "Cass", Weight: 1, SinceScene: 2},
	}
	campaign.SceneActive = false
	if err := store.CommitScene(ctx, campaign, second, threads); err != nil {
		t.Fatalf("replace lists: %v", err)
	}

	got, err := store.ListEntities(ctx, "camp-1", storage.EntityCharacter)
	if err != nil {
		t.Fatalf("list entities: %v", err)
	}
	if len(got) != 2 || got[0] != second[0] || got[1] != second[1] {
		t.Fatalf("characters = %+v, want %+v", got, second)
	}
	gotThreads, err := store.ListEntities(ctx, "camp-1", storage.EntityThread)
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if len(gotThreads) != 1 || gotThreads[0].Name != "Find the heir" {
		t.Fatalf("threads = %+v", gotThreads)
	}
	stored, err := store.GetCampaign(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if stored.SceneActive {
		t.Fatal("scene_active = true, want false")
	}
}

func TestCommitSceneRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	campaign := sampleCampaign(time.Now())
	characters := []storage.EntityRecord{{Key: "alyx", Name: "Alyx", Weight: 1}}
	if err := store.CommitScene(ctx, campaign, characters, nil); err != nil {
		t.Fatalf("commit scene: %v", err)
	}

	changed := campaign
	changed.SceneActive = false
	changed.Tension = 6
	duplicate := []storage.EntityRecord{
		{Key: "alyx", Name: "Alyx", Weight: 2},
		{Key: "alyx", Name: "Alyx", Weight: 3},
	}
	if err := store.CommitScene(ctx, changed, duplicate, nil); err == nil {
		t.Fatal("expected duplicate key error")
	}

	got, err := store.GetCampaign(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if !got.SceneActive || got.Tension != campaign.Tension {
		t.Fatalf("campaign = %+v, want unchanged", got)
	}
	list, err := store.ListEntities(ctx, "camp-1", storage.EntityCharacter)
	if err != nil {
		t.Fatalf("list entities: %v", err)
	}
	if len(list) != 1 || list[0].Weight != 1 {
		t.Fatalf("characters = %+v, want unchanged", list)
	}
}

func TestCommitRollsUpdatesCursorAndLog(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 3, 18, 0, 0, 0, time.UTC)
	campaign := sampleCampaign(now)
	if err := store.CommitScene(ctx, campaign, nil, nil); err != nil {
		t.Fatalf("put campaign: %v", err)
	}

	for i := 1; i <= 3; i++ {
		campaign.Sequence += 2
		roll := storage.RollRecord{
			ID:        fmt.Sprintf("roll-%d", i),
			Kind:      storage.RollDice,
			Summary:   fmt.Sprintf("roll %d", i),
			Seed:      campaign.Seed,
			Sequence:  campaign.Sequence,
			Detail:    `{"total":7}`,
			CreatedAt: now,
		}
		if err := store.CommitRolls(ctx, campaign, []storage.RollRecord{roll}); err != nil {
			t.Fatalf("commit roll %d: %v", i, err)
		}
	}

	got, err := store.GetCampaign(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if got.Sequence != 18 {
		t.Fatalf("sequence = %d, want 18", got.Sequence)
	}

	rolls, err := store.ListRolls(ctx, "camp-1", 2)
	if err != nil {
		t.Fatalf("list rolls: %v", err)
	}
	if len(rolls) != 2 {
		t.Fatalf("rolls = %d, want 2", len(rolls))
	}
	if rolls[0].ID != "roll-2" || rolls[1].ID != "roll-3" {
		t.Fatalf("roll order = %s, %s, want roll-2, roll-3", rolls[0].ID, rolls[1].ID)
	}
	if rolls[1].Seed != campaign.Seed || rolls[1].Sequence != 18 || rolls[1].CampaignID != "camp-1" {
		t.Fatalf("roll = %+v", rolls[1])
	}
}

func TestCommitRollsRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	campaign := sampleCampaign(time.Now())
	if err := store.CommitScene(ctx, campaign, nil, nil); err != nil {
		t.Fatalf("put campaign: %v", err)
	}

	campaign.Sequence = 99
	err := store.CommitRolls(ctx, campaign, []storage.RollRecord{{ID: ""}})
	if err == nil {
		t.Fatal("expected missing roll id error")
	}
	got, err := store.GetCampaign(ctx, "camp-1")
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if got.Sequence != 12 {
		t.Fatalf("sequence = %d, want unchanged 12", got.Sequence)
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetCampaign(ctx, "camp-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get campaign error = %v, want context.Canceled", err)
	}
}
