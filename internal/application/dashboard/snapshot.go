package dashboard

import (
	"time"

	"github.com/reelworks/backend/internal/domain/finance"
	"github.com/reelworks/backend/internal/domain/identity"
	"github.com/reelworks/backend/internal/domain/production"
)

// Snapshot is one immutable, fully normalized copy of the remote collections
// at a point in time. All queries compute over the latest installed snapshot;
// a snapshot is never mutated after installation, so two computations can
// never intermix data from different fetches.
type Snapshot struct {
	Generation uint64
	FetchedAt  time.Time

	Invoices []finance.Invoice
	Items    []finance.InvoiceItem
	Projects []production.Project
	Payments []finance.Payment
	Profile  identity.Profile
}

// WarningCount returns how many field-level normalization warnings the
// snapshot carries across all collections.
func (s *Snapshot) WarningCount() int {
	n := 0
	for _, inv := range s.Invoices {
		n += len(inv.Warnings)
	}
	for _, item := range s.Items {
		n += len(item.Warnings)
	}
	for _, p := range s.Projects {
		n += len(p.Warnings)
	}
	for _, p := range s.Payments {
		n += len(p.Warnings)
	}
	return n
}
