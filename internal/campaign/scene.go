package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/solo.space/internal/oracle"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/louisbranch/solo.space/internal/storage"
	"go.opentelemetry.io/otel/attribute"
)

// SceneResult is the outcome of beginning a scene.
type SceneResult struct {
	SceneNumber int               `json:"scene_number"`
	Check       oracle.SceneCheck `json:"check"`
	// Character and Thread name the list entries an interrupt's event focus
	// points at, when the focus concerns one and the list is not empty.
	Character string `json:"character,omitempty"`
	Thread    string `json:"thread,omitempty"`
	// Campaign is the state after the scene began. It is omitted from the
	// audit record.
	Campaign *Campaign `json:"campaign,omitempty"`
}

// BeginScene rolls the scene check for the next scene.
func (s *Service) BeginScene(ctx context.Context, campaignID string) (_ SceneResult, err error) {
	ctx, span := s.startSpan(ctx, "campaign.begin_scene", campaignID)
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return SceneResult{}, err
	}
	if record.SceneActive {
		return SceneResult{}, apperrors.WithMetadata(apperrors.CodeSceneAlreadyActive,
			fmt.Sprintf("scene %d is still active", record.SceneNumber),
			map[string]string{"campaign_id": record.ID})
	}
	characters, threads, err := s.loadLists(ctx, record)
	if err != nil {
		return SceneResult{}, err
	}

	before := record.Sequence
	r := roller(record)
	check := oracle.RollScene(r, record.Tension, s.lists)
	result := SceneResult{Check: check}
	if check.Focus != nil {
		focus := strings.ToLower(check.Focus.Focus)
		switch {
		case strings.Contains(focus, "npc") && !strings.Contains(focus, "new npc"):
			if picked, ok := characters.Pick(r); ok {
				result.Character = picked.Name
			}
		case strings.Contains(focus, "thread"):
			if picked, ok := threads.Pick(r); ok {
				result.Thread = picked.Name
			}
		}
	}

	record.Sequence = r.Sequence()
	record.SceneNumber++
	record.SceneActive = true
	record.UpdatedAt = s.now().UTC()
	result.SceneNumber = record.SceneNumber
	setRollAttributes(span, record.Seed, before, record.Sequence)

	summary := fmt.Sprintf("scene %d: %s (d10 %d vs tension %d)", record.SceneNumber, check.Type, check.Roll.Total, check.Tension)
	if err := s.commit(ctx, record, storage.RollScene, summary, result); err != nil {
		return SceneResult{}, err
	}
	campaign := view(record, characters, threads)
	result.Campaign = &campaign
	return result, nil
}

// EndSceneInput is the bookkeeping applied when a scene closes.
type EndSceneInput struct {
	// InControl reports whether the protagonists were in control of the scene;
	// it lowers tension, otherwise tension rises.
	InControl          bool
	NewCharacters      []string
	FeaturedCharacters []string
	RemovedCharacters  []string
	NewThreads         []string
	FeaturedThreads    []string
	ClosedThreads      []string
}

// EndScene updates tension and the weighted lists, and closes the scene.
// It rolls nothing.
func (s *Service) EndScene(ctx context.Context, campaignID string, input EndSceneInput) (_ Campaign, err error) {
	ctx, span := s.startSpan(ctx, "campaign.end_scene", campaignID)
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, campaignID)
	if err != nil {
		return Campaign{}, err
	}
	if !record.SceneActive {
		return Campaign{}, apperrors.WithMetadata(apperrors.CodeSceneNotActive,
			"no scene is active",
			map[string]string{"campaign_id": record.ID})
	}
	characters, threads, err := s.loadLists(ctx, record)
	if err != nil {
		return Campaign{}, err
	}

	characters.AddNew(input.NewCharacters...)
	characters.FeatureExisting(input.FeaturedCharacters...)
	characters.Remove(input.RemovedCharacters...)
	threads.AddNew(input.NewThreads...)
	threads.FeatureExisting(input.FeaturedThreads...)
	threads.Remove(input.ClosedThreads...)

	record.Tension = oracle.UpdateTension(record.Tension, input.InControl)
	record.SceneActive = false
	record.UpdatedAt = s.now().UTC()
	span.SetAttributes(attribute.Int("campaign.tension", record.Tension))

	if err := s.commitScene(ctx, record, characters, threads); err != nil {
		return Campaign{}, fmt.Errorf("end scene: %w", err)
	}
	return view(record, characters, threads), nil
}
