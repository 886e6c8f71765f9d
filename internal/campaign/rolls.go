package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/solo.space/internal/core/check"
	"github.com/louisbranch/solo.space/internal/core/dice"
	"github.com/louisbranch/solo.space/internal/oracle/fate"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/louisbranch/solo.space/internal/storage"
	"github.com/louisbranch/solo.space/internal/tables"
)

// FateInput is a yes/no question about the fiction.
type FateInput struct {
	Question   string
	Likelihood string
}

// FateResult is an answered fate question.
type FateResult struct {
	Question string        `json:"question,omitempty"`
	Result   fate.Question `json:"result"`
	Sequence uint64        `json:"sequence"`
}

// AskFate answers a fate question at the campaign's tension.
func (s *Service) AskFate(ctx context.Context, campaignID string, input FateInput) (_ FateResult, err error) {
	ctx, span := s.startSpan(ctx, "campaign.ask_fate", campaignID)
	defer func() { endSpan(span, err) }()

	likelihood, err := fate.ParseLikelihood(input.Likelihood)
	if err != nil {
		return FateResult{}, apperrors.Wrap(apperrors.CodeUnknownLikelihood, err.Error(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return FateResult{}, err
	}
	before := record.Sequence
	r := roller(record)
	question := fate.Ask(r, likelihood, record.Tension)
	record.Sequence = r.Sequence()
	record.UpdatedAt = s.now().UTC()
	setRollAttributes(span, record.Seed, before, record.Sequence)

	result := FateResult{
		Question: strings.TrimSpace(input.Question),
		Result:   question,
		Sequence: record.Sequence,
	}
	summary := fmt.Sprintf("fate (%s): %s, d100 %d vs %d", question.Likelihood, question.Answer, question.Roll.Total, question.Target)
	if question.Exceptional {
		summary += ", exceptional"
	}
	if question.RandomEvent {
		summary += ", random event"
	}
	if err := s.commit(ctx, record, storage.RollFate, summary, result); err != nil {
		return FateResult{}, err
	}
	return result, nil
}

// CheckInput is a check request plus the character's modifier.
type CheckInput struct {
	Request  check.Request
	Modifier int
}

// CheckResult is a rolled check.
type CheckResult struct {
	Skill      string            `json:"skill"`
	Kind       check.Kind        `json:"kind"`
	Advantage  check.Advantage   `json:"advantage"`
	Difficulty int               `json:"difficulty"`
	Rolled     check.RolledCheck `json:"rolled"`
	Sequence   uint64            `json:"sequence"`
}

// RollCheck snaps the request's difficulties to the band, defaulting a
// missing one, then rolls and evaluates the check.
func (s *Service) RollCheck(ctx context.Context, campaignID string, input CheckInput) (_ CheckResult, err error) {
	ctx, span := s.startSpan(ctx, "campaign.roll_check", campaignID)
	defer func() { endSpan(span, err) }()

	request := input.Request
	request.Skill = strings.TrimSpace(request.Skill)
	if request.Skill == "" {
		return CheckResult{}, apperrors.New(apperrors.CodeCheckInvalid, "check skill is required")
	}
	request = request.WithDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return CheckResult{}, err
	}
	before := record.Sequence
	r := roller(record)
	rolled := check.Roll(r, request, input.Modifier)
	record.Sequence = r.Sequence()
	record.UpdatedAt = s.now().UTC()
	setRollAttributes(span, record.Seed, before, record.Sequence)

	result := CheckResult{
		Skill:      request.Skill,
		Kind:       request.Kind,
		Advantage:  request.Advantage,
		Difficulty: request.Target(),
		Rolled:     rolled,
		Sequence:   record.Sequence,
	}
	summary := fmt.Sprintf("%s check: %s, %d vs %d", request.Skill, rolled.Evaluation.Outcome, rolled.Evaluation.Total, request.Target())
	if err := s.commit(ctx, record, storage.RollCheck, summary, result); err != nil {
		return CheckResult{}, err
	}
	return result, nil
}

// RollTable executes a table from the campaign's cursor. The campaign id is
// always taken from the campaign itself.
func (s *Service) RollTable(ctx context.Context, campaignID, tableID string, rollCtx tables.Context) (_ tables.Result, err error) {
	ctx, span := s.startSpan(ctx, "campaign.roll_table", campaignID)
	defer func() { endSpan(span, err) }()

	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return tables.Result{}, apperrors.New(apperrors.CodeTableIDEmpty, "table id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return tables.Result{}, err
	}
	rollCtx.CampaignID = record.ID
	rollCtx.Depth = 0

	before := record.Sequence
	result := s.engine.Execute(tableID, rollCtx, record.Seed, record.Sequence)
	record.Sequence = result.Sequence
	record.UpdatedAt = s.now().UTC()
	setRollAttributes(span, record.Seed, before, record.Sequence)

	summary := fmt.Sprintf("table %s: %d rolls, %d nodes, %d edges, %d traps",
		tableID, len(result.Rolls), len(result.Nodes), len(result.Edges), len(result.Traps))
	if err := s.commit(ctx, record, storage.RollTable, summary, result); err != nil {
		return tables.Result{}, err
	}
	return result, nil
}

// DiceResult is a pool of notations rolled from the campaign stream.
type DiceResult struct {
	Rolls    []dice.Roll `json:"rolls"`
	Total    int         `json:"total"`
	Sequence uint64      `json:"sequence"`
}

// RollDice rolls free-form notations, in order, from the campaign cursor.
// Unlike table rolls, a malformed notation is rejected instead of falling
// back to 1d100.
func (s *Service) RollDice(ctx context.Context, campaignID string, notations []string) (_ DiceResult, err error) {
	ctx, span := s.startSpan(ctx, "campaign.roll_dice", campaignID)
	defer func() { endSpan(span, err) }()

	if len(notations) == 0 {
		return DiceResult{}, apperrors.Wrap(apperrors.CodeDiceMissing, dice.ErrMissingDice.Error(), dice.ErrMissingDice)
	}
	parsed := make([]dice.Notation, 0, len(notations))
	for _, text := range notations {
		n, ok := dice.ParseNotationStrict(text)
		if !ok {
			return DiceResult{}, &apperrors.Error{
				Code:     apperrors.CodeDiceInvalidSpec,
				Message:  fmt.Sprintf("invalid dice notation %q", text),
				Metadata: map[string]string{"notation": text},
				Cause:    dice.ErrInvalidDiceSpec,
			}
		}
		parsed = append(parsed, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return DiceResult{}, err
	}
	before := record.Sequence
	pool, err := dice.RollDice(dice.Request{Dice: parsed, Seed: record.Seed, Sequence: record.Sequence})
	if err != nil {
		return DiceResult{}, fmt.Errorf("roll dice: %w", err)
	}
	record.Sequence = pool.Sequence
	record.UpdatedAt = s.now().UTC()
	setRollAttributes(span, record.Seed, before, record.Sequence)

	result := DiceResult{Rolls: pool.Rolls, Total: pool.Total, Sequence: record.Sequence}
	labels := make([]string, 0, len(pool.Rolls))
	for _, roll := range pool.Rolls {
		labels = append(labels, roll.String())
	}
	summary := fmt.Sprintf("dice: %s; total %d", strings.Join(labels, ", "), pool.Total)
	if err := s.commit(ctx, record, storage.RollDice, summary, result); err != nil {
		return DiceResult{}, err
	}
	return result, nil
}

// LogEntry is one audit log entry.
type LogEntry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Summary   string          `json:"summary"`
	Seed      uint64          `json:"seed,string"`
	Sequence  uint64          `json:"sequence"`
	Detail    json.RawMessage `json:"detail"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListRolls returns up to limit most recent audit entries, oldest first.
func (s *Service) ListRolls(ctx context.Context, campaignID string, limit int) (_ []LogEntry, err error) {
	ctx, span := s.startSpan(ctx, "campaign.list_rolls", campaignID)
	defer func() { endSpan(span, err) }()

	if _, err := s.load(ctx, campaignID); err != nil {
		return nil, err
	}
	records, err := s.store.ListRolls(ctx, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	entries := make([]LogEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, LogEntry{
			ID:        rec.ID,
			Kind:      string(rec.Kind),
			Summary:   rec.Summary,
			Seed:      rec.Seed,
			Sequence:  rec.Sequence,
			Detail:    json.RawMessage(rec.Detail),
			CreatedAt: rec.CreatedAt,
		})
	}
	return entries, nil
}
