// Package service owns the active-draft lifecycle. Exactly one draft
// is active at a time; it is mirrored to the file store on every
// mutation so a panel restart resumes mid-capture.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"leadclip/internal/modules/draft/domain"
	draftout "leadclip/internal/modules/draft/port/out"
	prospectdomain "leadclip/internal/modules/prospect/domain"
	"leadclip/internal/platform/clock"
	apperrors "leadclip/internal/platform/errors"
	"leadclip/internal/platform/id"
)

type DraftService struct {
	clock      clock.Clock
	store      draftout.DraftStore
	panelStore draftout.PanelStateStore

	mu          sync.Mutex
	subscribers []func(prospectdomain.Prospect)
}

func NewDraftService(clk clock.Clock, store draftout.DraftStore, panelStore draftout.PanelStateStore) *DraftService {
	return &DraftService{clock: clk, store: store, panelStore: panelStore}
}

func (s *DraftService) Subscribe(fn func(prospectdomain.Prospect)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *DraftService) Current(ctx context.Context) (prospectdomain.Prospect, error) {
	return s.store.Load(ctx)
}

// StartNew replaces whatever draft is active with a fresh one.
func (s *DraftService) StartNew(ctx context.Context) (prospectdomain.Prospect, error) {
	draft := prospectdomain.NewDraft(id.LocalDraftID(s.clock), s.clock.Now())
	if err := s.persist(ctx, draft); err != nil {
		return prospectdomain.Prospect{}, err
	}
	return draft, nil
}

// Apply writes one field into the active draft, creating the draft
// implicitly when none exists yet. Duplicate skill applications only
// move updated_at.
func (s *DraftService) Apply(ctx context.Context, field, value string) (prospectdomain.Prospect, error) {
	draft, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveDraft) {
		draft = prospectdomain.NewDraft(id.LocalDraftID(s.clock), s.clock.Now())
	} else if err != nil {
		return prospectdomain.Prospect{}, err
	}

	draft, err = domain.ApplyField(draft, field, value)
	if err != nil {
		return prospectdomain.Prospect{}, fmt.Errorf("apply %s: %w", field, err)
	}
	draft.UpdatedAt = s.clock.Now()
	if err := s.persist(ctx, draft); err != nil {
		return prospectdomain.Prospect{}, err
	}
	return draft, nil
}

// Replace loads a saved record into the draft slot for editing.
func (s *DraftService) Replace(ctx context.Context, record prospectdomain.Prospect) (prospectdomain.Prospect, error) {
	if record.ID == "" {
		return prospectdomain.Prospect{}, apperrors.ErrInvalidInput
	}
	if err := s.persist(ctx, record); err != nil {
		return prospectdomain.Prospect{}, err
	}
	return record, nil
}

func (s *DraftService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *DraftService) Panel(ctx context.Context) (domain.PanelState, error) {
	return s.panelStore.Load(ctx)
}

func (s *DraftService) UpdatePanel(ctx context.Context, mutate func(domain.PanelState) domain.PanelState) (domain.PanelState, error) {
	state, err := s.panelStore.Load(ctx)
	if err != nil {
		return domain.PanelState{}, err
	}
	state = mutate(state)
	if err := s.panelStore.Save(ctx, state); err != nil {
		return domain.PanelState{}, err
	}
	return state, nil
}

func (s *DraftService) persist(ctx context.Context, draft prospectdomain.Prospect) error {
	if err := s.store.Save(ctx, draft); err != nil {
		return fmt.Errorf("persist draft: %w", err)
	}
	s.mu.Lock()
	subs := make([]func(prospectdomain.Prospect), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(draft)
	}
	return nil
}
