package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/louisbranch/solo.space/internal/content"
	"github.com/louisbranch/solo.space/internal/core/dice"
	"github.com/louisbranch/solo.space/internal/core/random"
	"github.com/louisbranch/solo.space/internal/oracle"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/louisbranch/solo.space/internal/platform/id"
	"github.com/louisbranch/solo.space/internal/storage"
	"github.com/louisbranch/solo.space/internal/tables"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/solo.space/internal/campaign"

// Service coordinates campaign state, rolls and persistence.
//
// Mutating operations are serialized so concurrent requests never read the
// same cursor twice.
type Service struct {
	store         storage.Store
	engine        *tables.Engine
	lists         oracle.Lists
	now           func() time.Time
	idGenerator   func() (string, error)
	seedGenerator func() (uint64, error)
	tracer        trace.Tracer

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(generate func() (string, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.idGenerator = generate
		}
	}
}

// WithSeedGenerator overrides the seed source for new campaigns.
func WithSeedGenerator(generate func() (uint64, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.seedGenerator = generate
		}
	}
}

// WithTracer overrides the tracer campaign operations open spans on.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewService builds a service over store using the tables and oracle lists
// of pack.
func NewService(store storage.Store, pack content.Pack, opts ...Option) *Service {
	s := &Service{
		store:         store,
		engine:        tables.FromPack(pack),
		lists:         pack.OracleLists(),
		now:           time.Now,
		idGenerator:   id.NewID,
		seedGenerator: random.NewSeed,
		tracer:        otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the tables the service can roll, in pack order.
func (s *Service) Tables() []content.Table {
	return s.engine.Tables()
}

func (s *Service) startSpan(ctx context.Context, name, campaignID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("campaign.id", campaignID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func setRollAttributes(span trace.Span, seed, before, after uint64) {
	span.SetAttributes(
		attribute.String("roll.seed", strconv.FormatUint(seed, 10)),
		attribute.Int64("roll.sequence_before", int64(before)),
		attribute.Int64("roll.sequence_after", int64(after)),
	)
}

// load fetches a campaign record, mapping storage misses to domain errors.
func (s *Service) load(ctx context.Context, campaignID string) (storage.CampaignRecord, error) {
	if campaignID == "" {
		return storage.CampaignRecord{}, apperrors.New(apperrors.CodeCampaignIDEmpty, "campaign id is required")
	}
	record, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.CampaignRecord{}, &apperrors.Error{
				Code:     apperrors.CodeNotFound,
				Message:  fmt.Sprintf("campaign %s not found", campaignID),
				Metadata: map[string]string{"campaign_id": campaignID},
				Cause:    err,
			}
		}
		return storage.CampaignRecord{}, fmt.Errorf("load campaign: %w", err)
	}
	return record, nil
}

// roller positions a roller at the campaign cursor.
func roller(record storage.CampaignRecord) *dice.Roller {
	return dice.NewRoller(record.Seed, record.Sequence)
}

// commit persists the campaign with its advanced cursor and one audit record
// stamped with the campaign's UpdatedAt.
func (s *Service) commit(ctx context.Context, record storage.CampaignRecord, kind storage.RollKind, summary string, detail any) error {
	encoded, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode %s detail: %w", kind, err)
	}
	rollID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate roll id: %w", err)
	}
	roll := storage.RollRecord{
		ID:         rollID,
		CampaignID: record.ID,
		Kind:       kind,
		Summary:    summary,
		Seed:       record.Seed,
		Sequence:   record.Sequence,
		Detail:     string(encoded),
		CreatedAt:  record.UpdatedAt,
	}
	if err := s.store.CommitRolls(ctx, record, []storage.RollRecord{roll}); err != nil {
		return fmt.Errorf("commit %s roll: %w", kind, err)
	}
	return nil
}
