package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
	"github.com/ledgerline/ledgerline_backend/internal/utils/accounting"
)

var (
	ErrEntryMinAccounts   = errors.New("entry must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrBadAdjustmentType  = errors.New("unknown adjustment type")
	ErrDescriptionMissing = errors.New("entry description is required")
)

// journalService is the posting engine: it validates the double-entry
// invariants of an entry, resolves its accounts, computes the signed balance
// effect per account and hands everything to the repository as one atomic
// write.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// resolveEntryAccounts fetches and checks every account referenced by the
// lines: all must exist and be active, and at least two distinct accounts
// must be involved.
func resolveEntryAccounts(ctx context.Context, accountRepo portsrepo.AccountRepository, lines []domain.EntryLine) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	if len(accountIDs) < 2 {
		return nil, fmt.Errorf("%w", ErrEntryMinAccounts)
	}

	accounts, err := accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrInactiveAccount, acc.Code)
		}
	}
	return accounts, nil
}

// computeBalanceChanges nets the signed effect of every line per account,
// following the sign convention for the account's type.
func computeBalanceChanges(lines []domain.EntryLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		delta, err := accounting.LineDelta(line, accounts[line.AccountID].AccountType)
		if err != nil {
			return nil, err
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(delta)
	}
	return balanceChanges, nil
}

// buildEntry assembles a journal entry with its lines from request parts,
// stamping IDs and audit fields.
func buildEntry(entryDate time.Time, description, reference string, adjustmentType *domain.AdjustmentType, reqLines []dto.CreateEntryLineRequest, now time.Time) (domain.JournalEntry, []domain.EntryLine) {
	entryID := uuid.NewString()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	lines := make([]domain.EntryLine, len(reqLines))
	for i, lineReq := range reqLines {
		lines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			AuditFields: audit,
		}
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		EntryDate:      entryDate,
		Description:    description,
		IsAdjustment:   adjustmentType != nil,
		AdjustmentType: adjustmentType,
		IsPosted:       true,
		Reference:      reference,
		AuditFields:    audit,
	}
	return entry, lines
}

// postEntry runs the posting pipeline for an assembled entry: structural
// validation, account resolution, balance-change computation and the atomic
// save. The returned entry has its lines attached.
func (s *journalService) postEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error) {
	if entry.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	accounts, err := resolveEntryAccounts(ctx, s.accountRepo, lines)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInactiveAccount) || errors.Is(err, ErrEntryMinAccounts) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		s.LogError(ctx, err, "Failed to resolve entry accounts", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	balanceChanges, err := computeBalanceChanges(lines, accounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance changes", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("internal error computing balance changes: %w", err)
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entry.EntryID), slog.Bool("is_adjustment", entry.IsAdjustment))
	entry.Lines = lines
	return &entry, nil
}

func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	entry, lines := buildEntry(req.EntryDate, req.Description, req.Reference, nil, req.Lines, now)
	return s.postEntry(ctx, entry, lines)
}

func (s *journalService) CreateAdjustmentEntry(ctx context.Context, req dto.CreateAdjustmentEntryRequest) (*domain.JournalEntry, error) {
	if !domain.ValidAdjustmentType(req.AdjustmentType) {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrBadAdjustmentType, req.AdjustmentType)
	}
	now := time.Now().UTC()
	adjType := req.AdjustmentType
	entry, lines := buildEntry(req.EntryDate, req.Description, req.Reference, &adjType, req.Lines, now)
	return s.postEntry(ctx, entry, lines)
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find entry lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	if filter.AdjustmentType != nil && !domain.ValidAdjustmentType(*filter.AdjustmentType) {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrBadAdjustmentType, *filter.AdjustmentType)
	}

	entries, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if len(entries) == 0 {
		return []domain.JournalEntry{}, nil
	}

	entryIDs := make([]string, len(entries))
	for i, entry := range entries {
		entryIDs[i] = entry.EntryID
	}
	linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for listed entries")
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}
