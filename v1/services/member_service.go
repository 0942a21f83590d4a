package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gov-dx-sandbox/member-service/v1/database"
	"github.com/gov-dx-sandbox/member-service/v1/models"
)

// EventRecorder receives business events; *monitoring.Metrics satisfies it
type EventRecorder interface {
	RecordBusinessEvent(action, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordBusinessEvent(string, string) {}

// MemberService provides business logic for member operations.
// Both the REST handlers and the gRPC server delegate to it.
type MemberService struct {
	repo   database.MemberRepository
	events EventRecorder
}

// NewMemberService creates a new member service. events may be nil.
func NewMemberService(repo database.MemberRepository, events EventRecorder) *MemberService {
	if events == nil {
		events = noopRecorder{}
	}
	return &MemberService{repo: repo, events: events}
}

// CreateMember persists a new member built from req
func (s *MemberService) CreateMember(ctx context.Context, req models.MemberRequest) (*models.MemberResponse, error) {
	slog.Info("Creating new member", "name", req.Name)

	var created *models.Member
	err := s.repo.Transaction(ctx, func(tx database.MemberRepository) error {
		saved, err := tx.Save(ctx, models.NewMemberFromRequest(req))
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		s.events.RecordBusinessEvent(models.EventMemberCreated, models.OutcomeFailure)
		return nil, fmt.Errorf("%s: %w", models.OpCreateMember, err)
	}

	slog.Info("Member created successfully", "id", created.ID)
	s.events.RecordBusinessEvent(models.EventMemberCreated, models.OutcomeSuccess)
	resp := created.ToResponse()
	return &resp, nil
}

// GetMember returns the member with the given id or models.ErrMemberNotFound
func (s *MemberService) GetMember(ctx context.Context, id int64) (*models.MemberResponse, error) {
	slog.Info("Fetching member", "id", id)

	member, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.OpGetMember, err)
	}
	if !found {
		slog.Warn("Member not found", "id", id)
		return nil, models.NewMemberNotFoundError(id)
	}

	resp := member.ToResponse()
	return &resp, nil
}

// ListMembers returns every member; the slice is empty, not nil, when there are none
func (s *MemberService) ListMembers(ctx context.Context) ([]models.MemberResponse, error) {
	slog.Info("Fetching all members")

	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.OpListMembers, err)
	}

	responses := make([]models.MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, members[i].ToResponse())
	}
	return responses, nil
}

// UpdateMember overwrites name and age of an existing member
func (s *MemberService) UpdateMember(ctx context.Context, id int64, req models.MemberRequest) (*models.MemberResponse, error) {
	slog.Info("Updating member", "id", id)

	var updated *models.Member
	err := s.repo.Transaction(ctx, func(tx database.MemberRepository) error {
		member, found, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return models.NewMemberNotFoundError(id)
		}

		member.Apply(req)
		saved, err := tx.Save(ctx, &member)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		s.recordOutcome(models.EventMemberUpdated, err)
		if errors.Is(err, models.ErrMemberNotFound) {
			slog.Warn("Member not found", "id", id)
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", models.OpUpdateMember, err)
	}

	slog.Info("Member updated successfully", "id", id)
	s.events.RecordBusinessEvent(models.EventMemberUpdated, models.OutcomeSuccess)
	resp := updated.ToResponse()
	return &resp, nil
}

// DeleteMember removes an existing member or returns models.ErrMemberNotFound
func (s *MemberService) DeleteMember(ctx context.Context, id int64) error {
	slog.Info("Deleting member", "id", id)

	err := s.repo.Transaction(ctx, func(tx database.MemberRepository) error {
		exists, err := tx.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return models.NewMemberNotFoundError(id)
		}
		return tx.DeleteByID(ctx, id)
	})
	if err != nil {
		s.recordOutcome(models.EventMemberDeleted, err)
		if errors.Is(err, models.ErrMemberNotFound) {
			slog.Warn("Member not found", "id", id)
			return err
		}
		return fmt.Errorf("%s: %w", models.OpDeleteMember, err)
	}

	slog.Info("Member deleted successfully", "id", id)
	s.events.RecordBusinessEvent(models.EventMemberDeleted, models.OutcomeSuccess)
	return nil
}

// Ping reports whether the backing store is reachable
func (s *MemberService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *MemberService) recordOutcome(action string, err error) {
	if errors.Is(err, models.ErrMemberNotFound) {
		s.events.RecordBusinessEvent(action, models.OutcomeNotFound)
		return
	}
	s.events.RecordBusinessEvent(action, models.OutcomeFailure)
}
