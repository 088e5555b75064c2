package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

const maxTagNameLength = 64

type tagService struct {
	BaseService
	accounts *accountService
}

func (s *tagService) AssignTag(ctx context.Context, sess portsrepo.Session, accountCode, tagName, userID string, now time.Time) (*domain.AccountTagAssignment, error) {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" || len(tagName) > maxTagNameLength {
		return nil, apperrors.New(apperrors.KindInvalidInput, "tag name must be 1-%d characters", maxTagNameLength)
	}
	if _, err := s.accounts.GetAccount(ctx, sess, accountCode); err != nil {
		return nil, err
	}

	existing, err := sess.Tags().ListAssignmentsByAccount(ctx, accountCode)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.TagName == tagName {
			return nil, apperrors.New(apperrors.KindDuplicateTagAssignment, "account %s already carries tag %q", accountCode, tagName)
		}
	}

	tagID, err := sess.Tags().EnsureTag(ctx, tagName, now)
	if err != nil {
		return nil, err
	}
	id, err := sess.Tags().SaveAssignment(ctx, accountCode, tagID, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Wrap(apperrors.KindDuplicateTagAssignment, err, "account %s already carries tag %q", accountCode, tagName)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Tag assigned", slog.String("account_code", accountCode), slog.String("tag", tagName), slog.Int64("assignment_id", id))
	return &domain.AccountTagAssignment{
		ID:          id,
		AccountCode: accountCode,
		TagName:     tagName,
		CreatedAt:   now,
		CreatedBy:   userID,
	}, nil
}

func (s *tagService) RemoveTagAssignment(ctx context.Context, sess portsrepo.Session, id int64) error {
	if err := sess.Tags().DeleteAssignment(ctx, id); err != nil {
		return notFoundAs(err, apperrors.KindTagAssignmentNotFound, "tag assignment %d", id)
	}
	s.LogInfo(ctx, "Tag assignment removed", slog.Int64("assignment_id", id))
	return nil
}

// UpdateTagAssignment always fails: assignments are removed and created again, never edited.
func (s *tagService) UpdateTagAssignment(ctx context.Context, sess portsrepo.Session, id int64) error {
	if _, err := sess.Tags().FindAssignmentByID(ctx, id); err != nil {
		return notFoundAs(err, apperrors.KindTagAssignmentNotFound, "tag assignment %d", id)
	}
	return apperrors.New(apperrors.KindTagAssignmentImmutable, "tag assignment %d cannot be modified; remove it and assign again", id)
}

func (s *tagService) ListTagAssignments(ctx context.Context, sess portsrepo.Session, accountCode string) ([]domain.AccountTagAssignment, error) {
	if _, err := s.accounts.GetAccount(ctx, sess, accountCode); err != nil {
		return nil, err
	}
	return sess.Tags().ListAssignmentsByAccount(ctx, accountCode)
}
