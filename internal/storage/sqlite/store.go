// Package sqlite implements campaign storage on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/solo.space/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/solo.space/internal/storage"
	"github.com/louisbranch/solo.space/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DefaultRollLimit caps ListRolls when the caller passes no limit.
const DefaultRollLimit = 100

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Seeds and cursors use the full uint64 range; SQLite integers are signed, so
// they are stored bit-for-bit as int64.
func toInt64(value uint64) int64 {
	return int64(value)
}

func fromInt64(value int64) uint64 {
	return uint64(value)
}

// Store provides SQLite-backed persistence for campaigns.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putCampaign(ctx context.Context, db execer, record storage.CampaignRecord) error {
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("campaign id is required")
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO campaigns (
	id, name, seed, sequence, tension, scene_number, scene_active, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	seed = excluded.seed,
	sequence = excluded.sequence,
	tension = excluded.tension,
	scene_number = excluded.scene_number,
	scene_active = excluded.scene_active,
	updated_at = excluded.updated_at
`,
		record.ID,
		record.Name,
		toInt64(record.Seed),
		toInt64(record.Sequence),
		record.Tension,
		record.SceneNumber,
		record.SceneActive,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put campaign: %w", err)
	}
	return nil
}

// GetCampaign fetches a campaign record by ID.
func (s *Store) GetCampaign(ctx context.Context, id string) (storage.CampaignRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CampaignRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.CampaignRecord{}, fmt.Errorf("campaign id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, seed, sequence, tension, scene_number, scene_active, created_at, updated_at
FROM campaigns
WHERE id = ?
`, id)

	var (
		rec       storage.CampaignRecord
		seed      int64
		sequence  int64
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&seed,
		&sequence,
		&rec.Tension,
		&rec.SceneNumber,
		&rec.SceneActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CampaignRecord{}, storage.ErrNotFound
		}
		return storage.CampaignRecord{}, fmt.Errorf("get campaign: %w", err)
	}
	rec.Seed = fromInt64(seed)
	rec.Sequence = fromInt64(sequence)
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

// CommitScene stores the campaign state and replaces its character and
// thread lists atomically.
func (s *Store) CommitScene(ctx context.Context, campaign storage.CampaignRecord, characters, threads []storage.EntityRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit scene: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := putCampaign(ctx, tx, campaign); err != nil {
		return err
	}
	if err := replaceEntities(ctx, tx, campaign.ID, storage.EntityCharacter, characters); err != nil {
		return err
	}
	if err := replaceEntities(ctx, tx, campaign.ID, storage.EntityThread, threads); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scene: %w", err)
	}
	return nil
}

func replaceEntities(ctx context.Context, db execer, campaignID string, kind storage.EntityKind, entities []storage.EntityRecord) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM campaign_entities WHERE campaign_id = ? AND kind = ?`, campaignID, string(kind)); err != nil {
		return fmt.Errorf("clear %s entities: %w", kind, err)
	}
	for i, e := range entities {
		if _, err := db.ExecContext(ctx, `
INSERT INTO campaign_entities (campaign_id, kind, position, key, name, weight, since_scene)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, campaignID, string(kind), i, e.Key, e.Name, e.Weight, e.SinceScene); err != nil {
			return fmt.Errorf("insert %s %q: %w", kind, e.Key, err)
		}
	}
	return nil
}

// ListEntities returns the weighted list of kind in stored order.
func (s *Store) ListEntities(ctx context.Context, campaignID string, kind storage.EntityKind) ([]storage.EntityRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT key, name, weight, since_scene
FROM campaign_entities
WHERE campaign_id = ? AND kind = ?
ORDER BY position
`, campaignID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	var out []storage.EntityRecord
	for rows.Next() {
		var rec storage.EntityRecord
		if err := rows.Scan(&rec.Key, &rec.Name, &rec.Weight, &rec.SinceScene); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}
	return out, nil
}

// CommitRolls stores the campaign state and appends rolls atomically.
func (s *Store) CommitRolls(ctx context.Context, campaign storage.CampaignRecord, rolls []storage.RollRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit rolls: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := putCampaign(ctx, tx, campaign); err != nil {
		return err
	}
	for _, r := range rolls {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("roll id is required")
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO roll_log (id, campaign_id, kind, summary, seed, sequence, detail, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
			r.ID,
			campaign.ID,
			string(r.Kind),
			r.Summary,
			toInt64(r.Seed),
			toInt64(r.Sequence),
			r.Detail,
			toMillis(r.CreatedAt),
		); err != nil {
			return fmt.Errorf("append roll: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rolls: %w", err)
	}
	return nil
}

// ListRolls returns up to limit most recent rolls of a campaign, oldest first.
func (s *Store) ListRolls(ctx context.Context, campaignID string, limit int) ([]storage.RollRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRollLimit
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, campaign_id, kind, summary, seed, sequence, detail, created_at
FROM roll_log
WHERE campaign_id = ?
ORDER BY rowid DESC
LIMIT ?
`, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()

	var out []storage.RollRecord
	for rows.Next() {
		var (
			rec       storage.RollRecord
			kind      string
			seed      int64
			sequence  int64
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.CampaignID, &kind, &rec.Summary, &seed, &sequence, &rec.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		rec.Kind = storage.RollKind(kind)
		rec.Seed = fromInt64(seed)
		rec.Sequence = fromInt64(sequence)
		rec.CreatedAt = fromMillis(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rolls: %w", err)
	}
	slices.Reverse(out)
	return out, nil
}
