package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/ledgerline/ledgerline_backend/internal/core/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
)

// postingLedger emulates the row-locked account table: reads and balance
// writes serialize on one lock, the way overlapping postings serialize on
// the locked account rows.
type postingLedger struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	entries  int
}

type concurrentJournalRepo struct {
	MockJournalRepository
	ledger *postingLedger
}

func (r *concurrentJournalRepo) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	for accID, delta := range balanceChanges {
		acc, ok := r.ledger.accounts[accID]
		if !ok {
			return fmt.Errorf("unknown account %s", accID)
		}
		acc.Balance = acc.Balance.Add(delta)
		r.ledger.accounts[accID] = acc
	}
	r.ledger.entries++
	return nil
}

type concurrentAccountRepo struct {
	MockAccountRepository
	ledger *postingLedger
}

func (r *concurrentAccountRepo) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.ledger.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

// Many goroutines post against the same two accounts; every delta must land,
// none may be lost to an interleaved read-modify-write.
func TestCreateEntry_ConcurrentPostingsLoseNoUpdates(t *testing.T) {
	cash := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}
	revenue := domain.Account{AccountID: uuid.NewString(), Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue, IsActive: true}
	ledger := &postingLedger{accounts: map[string]domain.Account{
		cash.AccountID:    cash,
		revenue.AccountID: revenue,
	}}
	service := services.NewJournalService(&concurrentJournalRepo{ledger: ledger}, &concurrentAccountRepo{ledger: ledger})

	const workers = 8
	const postingsPerWorker = 25
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	errs := make(chan error, workers*postingsPerWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < postingsPerWorker; i++ {
				_, err := service.CreateEntry(context.Background(), dto.CreateJournalEntryRequest{
					EntryDate:   time.Now(),
					Description: fmt.Sprintf("Cash sale %d-%d", w, i),
					Lines: []dto.CreateEntryLineRequest{
						{AccountID: cash.AccountID, Debit: amount},
						{AccountID: revenue.AccountID, Credit: amount},
					},
				})
				if err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	want := amount.Mul(decimal.NewFromInt(workers * postingsPerWorker))
	require.Equal(t, workers*postingsPerWorker, ledger.entries)
	require.True(t, ledger.accounts[cash.AccountID].Balance.Equal(want),
		"cash should hold the sum of every posting, got %s", ledger.accounts[cash.AccountID].Balance)
	require.True(t, ledger.accounts[revenue.AccountID].Balance.Equal(want),
		"revenue should hold the sum of every posting, got %s", ledger.accounts[revenue.AccountID].Balance)
}
