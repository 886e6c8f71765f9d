package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/solo.space/internal/oracle"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/louisbranch/solo.space/internal/storage"
	"github.com/louisbranch/solo.space/internal/weighted"
)

// Character is the value carried by a character list entry.
type Character struct {
	IntroducedScene int `json:"introduced_scene"`
}

// Thread is the value carried by a thread list entry.
type Thread struct {
	OpenedScene int `json:"opened_scene"`
}

// Campaign is the read model of a campaign.
type Campaign struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Seed        uint64                       `json:"seed,string"`
	Sequence    uint64                       `json:"sequence"`
	Tension     int                          `json:"tension"`
	SceneNumber int                          `json:"scene_number"`
	SceneActive bool                         `json:"scene_active"`
	Characters  []weighted.Entity[Character] `json:"characters"`
	Threads     []weighted.Entity[Thread]    `json:"threads"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// CreateInput describes a new campaign.
type CreateInput struct {
	Name string
	// Seed pins the roll stream; nil draws a random seed.
	Seed       *uint64
	Characters []string
	Threads    []string
}

// Create starts a campaign at middle tension with no scene played.
func (s *Service) Create(ctx context.Context, input CreateInput) (_ Campaign, err error) {
	ctx, span := s.startSpan(ctx, "campaign.create", "")
	defer func() { endSpan(span, err) }()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Campaign{}, apperrors.New(apperrors.CodeCampaignNameEmpty, "campaign name is required")
	}
	var seed uint64
	if input.Seed != nil {
		seed = *input.Seed
	} else {
		seed, err = s.seedGenerator()
		if err != nil {
			return Campaign{}, fmt.Errorf("generate seed: %w", err)
		}
	}
	campaignID, err := s.idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate campaign id: %w", err)
	}

	now := s.now().UTC()
	record := storage.CampaignRecord{
		ID:        campaignID,
		Name:      name,
		Seed:      seed,
		Tension:   oracle.DefaultTension,
		CreatedAt: now,
		UpdatedAt: now,
	}
	characters := s.characters(record, nil)
	characters.AddNew(input.Characters...)
	threads := s.threads(record, nil)
	threads.AddNew(input.Threads...)

	if err := s.commitScene(ctx, record, characters, threads); err != nil {
		return Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return view(record, characters, threads), nil
}

// Get returns a campaign with its weighted lists.
func (s *Service) Get(ctx context.Context, campaignID string) (_ Campaign, err error) {
	ctx, span := s.startSpan(ctx, "campaign.get", campaignID)
	defer func() { endSpan(span, err) }()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return Campaign{}, err
	}
	characters, threads, err := s.loadLists(ctx, record)
	if err != nil {
		return Campaign{}, err
	}
	return view(record, characters, threads), nil
}

func view(record storage.CampaignRecord, characters *weighted.List[Character], threads *weighted.List[Thread]) Campaign {
	return Campaign{
		ID:          record.ID,
		Name:        record.Name,
		Seed:        record.Seed,
		Sequence:    record.Sequence,
		Tension:     record.Tension,
		SceneNumber: record.SceneNumber,
		SceneActive: record.SceneActive,
		Characters:  characters.Entities(),
		Threads:     threads.Entities(),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// characters builds the character list; new entries are stamped with the
// campaign's current scene.
func (s *Service) characters(record storage.CampaignRecord, stored []storage.EntityRecord) *weighted.List[Character] {
	list := weighted.New[Character](func(string) Character {
		return Character{IntroducedScene: record.SceneNumber}
	})
	entities := make([]weighted.Entity[Character], 0, len(stored))
	for _, e := range stored {
		entities = append(entities, weighted.Entity[Character]{
			Name:   e.Name,
			Key:    e.Key,
			Weight: e.Weight,
			Value:  Character{IntroducedScene: e.SinceScene},
		})
	}
	list.Restore(entities)
	return list
}

func (s *Service) threads(record storage.CampaignRecord, stored []storage.EntityRecord) *weighted.List[Thread] {
	list := weighted.New[Thread](func(string) Thread {
		return Thread{OpenedScene: record.SceneNumber}
	})
	entities := make([]weighted.Entity[Thread], 0, len(stored))
	for _, e := range stored {
		entities = append(entities, weighted.Entity[Thread]{
			Name:   e.Name,
			Key:    e.Key,
			Weight: e.Weight,
			Value:  Thread{OpenedScene: e.SinceScene},
		})
	}
	list.Restore(entities)
	return list
}

func (s *Service) loadLists(ctx context.Context, record storage.CampaignRecord) (*weighted.List[Character], *weighted.List[Thread], error) {
	storedCharacters, err := s.store.ListEntities(ctx, record.ID, storage.EntityCharacter)
	if err != nil {
		return nil, nil, fmt.Errorf("load characters: %w", err)
	}
	storedThreads, err := s.store.ListEntities(ctx, record.ID, storage.EntityThread)
	if err != nil {
		return nil, nil, fmt.Errorf("load threads: %w", err)
	}
	return s.characters(record, storedCharacters), s.threads(record, storedThreads), nil
}

// commitScene saves the campaign together with both weighted lists.
func (s *Service) commitScene(ctx context.Context, record storage.CampaignRecord, characters *weighted.List[Character], threads *weighted.List[Thread]) error {
	characterRecords := make([]storage.EntityRecord, 0, characters.Len())
	for _, e := range characters.Entities() {
		characterRecords = append(characterRecords, storage.EntityRecord{Key: e.Key, Name: e.Name, Weight: e.Weight, SinceScene: e.Value.IntroducedScene})
	}
	threadRecords := make([]storage.EntityRecord, 0, threads.Len())
	for _, e := range threads.Entities() {
		threadRecords = append(threadRecords, storage.EntityRecord{Key: e.Key, Name: e.Name, Weight: e.Weight, SinceScene: e.Value.OpenedScene})
	}
	return s.store.CommitScene(ctx, record, characterRecords, threadRecords)
}
