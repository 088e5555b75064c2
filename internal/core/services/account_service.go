package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

const maxAccountCodeLength = 32

// accountService implements the account registry on top of a session.
type accountService struct {
	BaseService
}

// ValidateAccountCode checks that code is 1-32 characters with no whitespace.
func ValidateAccountCode(code string) error {
	if code == "" || len(code) > maxAccountCodeLength {
		return apperrors.New(apperrors.KindInvalidInput, "account code must be 1-%d characters", maxAccountCodeLength)
	}
	if strings.IndexFunc(code, unicode.IsSpace) >= 0 {
		return apperrors.New(apperrors.KindInvalidInput, "account code %q contains whitespace", code)
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, sess portsrepo.Session, code, name string, accountType domain.AccountType, normal domain.Side, userID string, now time.Time) (*domain.Account, error) {
	if err := ValidateAccountCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "account name is required")
	}
	if !accountType.IsValid() {
		return nil, apperrors.New(apperrors.KindInvalidInput, "unknown account type %q", accountType)
	}
	if !normal.IsValid() {
		return nil, apperrors.New(apperrors.KindInvalidInput, "unknown normal balance %q", normal)
	}

	_, err := sess.Accounts().FindAccountByCode(ctx, code)
	if err == nil {
		return nil, apperrors.New(apperrors.KindDuplicateAccount, "account %s already exists", code)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	account := domain.Account{
		Code:          code,
		Name:          name,
		AccountType:   accountType,
		NormalBalance: normal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := sess.Accounts().SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Wrap(apperrors.KindDuplicateAccount, err, "account %s already exists", code)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_code", code))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, sess portsrepo.Session, code string) (*domain.Account, error) {
	account, err := sess.Accounts().FindAccountByCode(ctx, code)
	if err != nil {
		return nil, notFoundAs(err, apperrors.KindAccountNotFound, "account %s", code)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, sess portsrepo.Session, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "offset must not be negative")
	}
	return sess.Accounts().ListAccounts(ctx, limit, offset)
}

// SetControlAccount links code to target, or clears the link when target is nil. The link may
// only change while neither side carries posted activity.
func (s *accountService) SetControlAccount(ctx context.Context, sess portsrepo.Session, code string, target *string, userID string, now time.Time) (*domain.Account, error) {
	repo := sess.Accounts()
	account, err := s.GetAccount(ctx, sess, code)
	if err != nil {
		return nil, err
	}
	if target != nil && *target == "" {
		target = nil
	}

	if target != nil {
		if _, err := s.GetAccount(ctx, sess, *target); err != nil {
			return nil, err
		}
		parentOf := func(c string) (string, error) {
			a, err := repo.FindAccountByCode(ctx, c)
			if err != nil {
				return "", notFoundAs(err, apperrors.KindAccountNotFound, "account %s", c)
			}
			if a.ControlAccountCode == nil {
				return "", nil
			}
			return *a.ControlAccountCode, nil
		}
		if err := accounting.ValidateControlLink(code, *target, parentOf); err != nil {
			return nil, err
		}
	}

	if sameLink(account.ControlAccountCode, target) {
		return account, nil
	}

	if target != nil {
		posted, err := repo.CountPostedLines(ctx, *target)
		if err != nil {
			return nil, err
		}
		if posted > 0 {
			return nil, apperrors.New(apperrors.KindControlAccountHasPostedActivity,
				"account %s already has %d posted lines and cannot become a control account", *target, posted)
		}
	}
	posted, err := repo.CountPostedLines(ctx, code)
	if err != nil {
		return nil, err
	}
	if posted > 0 {
		return nil, apperrors.New(apperrors.KindControlAccountHasPostedActivity,
			"account %s already has %d posted lines and its control account cannot change", code, posted)
	}

	if err := repo.UpdateControlAccount(ctx, code, target, userID, now); err != nil {
		return nil, err
	}
	account.ControlAccountCode = target
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	s.LogInfo(ctx, "Control account updated", slog.String("account_code", code), slog.Any("control_account_code", target))
	return account, nil
}

func sameLink(current, target *string) bool {
	if current == nil || target == nil {
		return current == nil && target == nil
	}
	return *current == *target
}

// GetAccountBalance totals posted lines of the account, or of every account beneath it when it
// is a control account.
func (s *accountService) GetAccountBalance(ctx context.Context, sess portsrepo.Session, code string) (*domain.AccountBalance, error) {
	account, err := s.GetAccount(ctx, sess, code)
	if err != nil {
		return nil, err
	}

	descendants, err := s.descendants(ctx, sess, code)
	if err != nil {
		return nil, err
	}
	codes := []string{code}
	if len(descendants) > 0 {
		codes = descendants
	}

	debit, credit, err := sess.Accounts().SumPostedLines(ctx, codes)
	if err != nil {
		return nil, err
	}
	balance := domain.NewAccountBalance(code, account.NormalBalance, debit, credit)
	balance.IsControl = len(descendants) > 0
	balance.Subsidiaries = descendants
	return &balance, nil
}

// descendants walks the control hierarchy below code.
func (s *accountService) descendants(ctx context.Context, sess portsrepo.Session, code string) ([]string, error) {
	seen := map[string]bool{code: true}
	var out []string
	queue := []string{code}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children, err := sess.Accounts().ListSubsidiaryCodes(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	sort.Strings(out)
	return out, nil
}
