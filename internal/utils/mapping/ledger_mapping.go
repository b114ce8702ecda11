package mapping

import (
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/models"
)

// ToModelLedgerAccount converts a domain LedgerAccount to a model LedgerAccount
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:    d.AccountID,
		AccountType:  string(d.Type),
		Name:         d.Name,
		ContactName:  nullString(d.ContactName),
		ContactEmail: nullString(d.ContactEmail),
		ContactPhone: nullString(d.ContactPhone),
		IsDeleted:    d.IsDeleted,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerAccount converts a model LedgerAccount to a domain LedgerAccount
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:    m.AccountID,
		Type:         domain.AccountType(m.AccountType),
		Name:         m.Name,
		ContactName:  m.ContactName.String,
		ContactEmail: m.ContactEmail.String,
		ContactPhone: m.ContactPhone.String,
		IsDeleted:    m.IsDeleted,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerAccountSlice converts a slice of model LedgerAccounts to a slice of domain LedgerAccounts
func ToDomainLedgerAccountSlice(ms []models.LedgerAccount) []domain.LedgerAccount {
	ds := make([]domain.LedgerAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerAccount(m)
	}
	return ds
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry. Seq is left to the database.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		EntryDate:   d.Date,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		RefType:     nullString(string(d.RefType)),
		RefID:       nullString(d.RefID),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Date:        m.EntryDate.UTC(),
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		RefType:     domain.RefType(m.RefType.String),
		RefID:       m.RefID.String,
		Sequence:    m.Seq,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
