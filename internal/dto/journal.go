package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one debit or credit line of a journal entry
// request. Amounts must be non-negative and at least one side nonzero.
type CreateEntryLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to post a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Reference   string                   `json:"reference"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// CreateAdjustmentEntryRequest defines the data needed to post an adjusting
// entry. Identical to a regular entry plus the adjustment classification.
type CreateAdjustmentEntryRequest struct {
	EntryDate      time.Time                `json:"entryDate" binding:"required"`
	Description    string                   `json:"description" binding:"required"`
	Reference      string                   `json:"reference"`
	AdjustmentType domain.AdjustmentType    `json:"adjustmentType" binding:"required,adjustmenttype"`
	Lines          []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for a journal entry line.
type EntryLineResponse struct {
	LineID         string          `json:"lineID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID        string              `json:"entryID"`
	EntryDate      time.Time           `json:"entryDate"`
	Description    string              `json:"description"`
	Reference      string              `json:"reference,omitempty"`
	IsAdjustment   bool                `json:"isAdjustment"`
	AdjustmentType *string             `json:"adjustmentType,omitempty"`
	IsPosted       bool                `json:"isPosted"`
	Lines          []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	IsAdjustment   *bool      `form:"isAdjustment"`
	AdjustmentType *string    `form:"adjustmentType"`
	From           *time.Time `form:"from" time_format:"2006-01-02"`
	To             *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListAdjustmentsParams defines query parameters for listing adjustment entries.
type ListAdjustmentsParams struct {
	AdjustmentType *string    `form:"adjustmentType"`
	From           *time.Time `form:"from" time_format:"2006-01-02"`
	To             *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListJournalEntriesResponse wraps the list of journal entries.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToEntryLineResponse converts a domain.EntryLine to EntryLineResponse DTO.
func ToEntryLineResponse(line *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:         line.LineID,
		AccountID:      line.AccountID,
		Debit:          line.Debit,
		Credit:         line.Credit,
		RunningBalance: line.RunningBalance,
	}
}

// ToEntryLineResponses converts a slice of domain.EntryLine to []EntryLineResponse.
func ToEntryLineResponses(lines []domain.EntryLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToEntryLineResponse(&line)
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:       entry.EntryID,
		EntryDate:     entry.EntryDate,
		Description:   entry.Description,
		Reference:     entry.Reference,
		IsAdjustment:  entry.IsAdjustment,
		IsPosted:      entry.IsPosted,
		Lines:         ToEntryLineResponses(entry.Lines),
		CreatedAt:     entry.CreatedAt,
		LastUpdatedAt: entry.LastUpdatedAt,
	}
	if entry.AdjustmentType != nil {
		s := string(*entry.AdjustmentType)
		resp.AdjustmentType = &s
	}
	return resp
}

// ToListJournalEntriesResponse converts a slice of domain.JournalEntry to the list DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry) ListJournalEntriesResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToJournalEntryResponse(&entry)
	}
	return ListJournalEntriesResponse{Entries: responses}
}
