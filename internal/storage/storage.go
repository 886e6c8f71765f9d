package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// CampaignRecord is the persisted state of one solo campaign.
type CampaignRecord struct {
	ID   string
	Name string
	// Seed and Sequence locate the campaign's position in its roll stream.
	Seed        uint64
	Sequence    uint64
	Tension     int
	SceneNumber int
	SceneActive bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntityKind names a weighted list of a campaign.
type EntityKind string

const (
	EntityCharacter EntityKind = "character"
	EntityThread    EntityKind = "thread"
)

// EntityRecord is one weighted entity, stored in list order.
type EntityRecord struct {
	Key    string
	Name   string
	Weight int
	// SinceScene is the scene number the entity was introduced in.
	SinceScene int
}

// RollKind classifies an audit record.
type RollKind string

const (
	RollScene RollKind = "scene"
	RollFate  RollKind = "fate"
	RollCheck RollKind = "check"
	RollTable RollKind = "table"
	RollDice  RollKind = "dice"
)

// RollRecord is one audit log entry.
type RollRecord struct {
	ID         string
	CampaignID string
	Kind       RollKind
	Summary    string
	Seed       uint64
	// Sequence is the campaign cursor after the roll.
	Sequence uint64
	// Detail is the JSON encoding of the full outcome.
	Detail    string
	CreatedAt time.Time
}

// CampaignStore persists campaign records.
type CampaignStore interface {
	// CommitScene saves the campaign and replaces both of its weighted lists
	// in one transaction.
	CommitScene(ctx context.Context, campaign CampaignRecord, characters, threads []EntityRecord) error
	GetCampaign(ctx context.Context, id string) (CampaignRecord, error)
}

// EntityStore reads weighted entity lists.
type EntityStore interface {
	ListEntities(ctx context.Context, campaignID string, kind EntityKind) ([]EntityRecord, error)
}

// RollStore persists the roll audit log.
type RollStore interface {
	// CommitRolls saves the campaign's new state and appends rolls in one
	// transaction so the cursor and the log never diverge.
	CommitRolls(ctx context.Context, campaign CampaignRecord, rolls []RollRecord) error
	// ListRolls returns up to limit most recent rolls, oldest first.
	ListRolls(ctx context.Context, campaignID string, limit int) ([]RollRecord, error)
}

// Store is the full persistence surface of the campaign service.
type Store interface {
	CampaignStore
	EntityStore
	RollStore
	Close() error
}
