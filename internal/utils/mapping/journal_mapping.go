package mapping

import (
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/ledgerline/ledgerline_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its model form.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      d.EntryID,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		IsAdjustment: d.IsAdjustment,
		IsPosted:     d.IsPosted,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.AdjustmentType != nil {
		at := string(*d.AdjustmentType)
		m.AdjustmentType = &at
	}
	if d.Reference != "" {
		ref := d.Reference
		m.Reference = &ref
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		IsAdjustment: m.IsAdjustment,
		IsPosted:     m.IsPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.AdjustmentType != nil && *m.AdjustmentType != "" {
		at := domain.AdjustmentType(*m.AdjustmentType)
		d.AdjustmentType = &at
	}
	if m.Reference != nil {
		d.Reference = *m.Reference
	}
	return d
}

// ToModelEntryLine converts a domain EntryLine to its model form.
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		RunningBalance: d.RunningBalance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainEntryLine converts a model EntryLine to its domain form.
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		RunningBalance: m.RunningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
