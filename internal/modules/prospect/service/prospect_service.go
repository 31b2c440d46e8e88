// Package service implements save semantics: required-field gating by
// role and phase, the create-versus-update decision, the status
// handoff, and the single-save-in-flight guard.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"leadclip/internal/modules/prospect/domain"
	prospectout "leadclip/internal/modules/prospect/port/out"
	"leadclip/internal/platform/clock"
	apperrors "leadclip/internal/platform/errors"
)

type ProspectService struct {
	clock clock.Clock
	api   prospectout.BackendAPI
	cache prospectout.Cache

	mu       sync.Mutex
	inFlight bool
}

func NewProspectService(clk clock.Clock, api prospectout.BackendAPI, cache prospectout.Cache) *ProspectService {
	return &ProspectService{clock: clk, api: api, cache: cache}
}

// SaveResult reports what the save did alongside the server's copy of
// the record.
type SaveResult struct {
	Prospect domain.Prospect
	Created  bool
}

// Save validates, applies the status transition for the draft's phase,
// and sends the record to the backend. Only one save runs at a time;
// a second call while one is in flight fails fast and leaves the
// draft untouched.
func (s *ProspectService) Save(ctx context.Context, token string, draft domain.Prospect, strategy domain.Strategy) (SaveResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return SaveResult{}, apperrors.ErrSaveInFlight
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	if missing := strategy.Missing(draft, s.clock.Now()); len(missing) > 0 {
		return SaveResult{}, fmt.Errorf("%w: %s", apperrors.ErrMissingFields, strings.Join(missing, ", "))
	}

	draft = s.applyTransition(draft)
	draft.UpdatedAt = s.clock.Now()

	if draft.IsPersisted() {
		saved, err := s.api.Update(ctx, token, draft)
		if err != nil {
			return SaveResult{}, err
		}
		return SaveResult{Prospect: saved}, nil
	}
	saved, err := s.api.Create(ctx, token, draft)
	if err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Prospect: saved, Created: true}, nil
}

// applyTransition moves status per phase. The handoff out of pitch
// needs an invited, assigned prospect; the connect step needs the
// state flag; the follow-up phase never moves, it stamps the contact
// time instead.
func (s *ProspectService) applyTransition(draft domain.Prospect) domain.Prospect {
	switch domain.PhaseOf(draft.Status) {
	case domain.PhaseCapture:
		if draft.Status == domain.StatusPitch &&
			draft.LinkedInState == domain.LinkedInInvite &&
			draft.AssignedLH != "" {
			draft.Status = domain.NextStatus(draft.Status, draft.HasEmail(), draft.LinkedInState)
		}
	case domain.PhaseOutreach:
		draft.Status = domain.NextStatus(draft.Status, draft.HasEmail(), draft.LinkedInState)
	case domain.PhaseFollowUp:
		draft.LastContactedAt = s.clock.Now()
	}
	return draft
}

// ChangeStatus applies an explicit status edit outside the save flow.
func (s *ProspectService) ChangeStatus(ctx context.Context, token string, record domain.Prospect, to domain.Status) (domain.Prospect, error) {
	if !domain.AllowedTransition(record.Status, to) {
		return domain.Prospect{}, fmt.Errorf("%w: cannot move %s to %s", apperrors.ErrInvalidInput, record.Status, to)
	}
	record.Status = to
	record.UpdatedAt = s.clock.Now()
	if !record.IsPersisted() {
		return record, nil
	}
	return s.api.Update(ctx, token, record)
}

// Busy reports whether a save is currently in flight.
func (s *ProspectService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// List serves from the local cache.
func (s *ProspectService) List(ctx context.Context, filter prospectout.ListFilter) ([]domain.Prospect, error) {
	return s.cache.List(ctx, filter)
}

// Sync refreshes the cache from the backend and returns the fresh
// records.
func (s *ProspectService) Sync(ctx context.Context, token string, filter prospectout.ListFilter) ([]domain.Prospect, error) {
	prospects, err := s.api.List(ctx, token, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Replace(ctx, prospects); err != nil {
		return nil, fmt.Errorf("refresh cache: %w", err)
	}
	return prospects, nil
}

func (s *ProspectService) Skills(ctx context.Context, token string) ([]string, error) {
	return s.api.Skills(ctx, token)
}

func (s *ProspectService) TeamMembers(ctx context.Context, token string) ([]prospectout.TeamMember, error) {
	return s.api.TeamMembers(ctx, token)
}
