package dashboard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reelworks/backend/internal/domain/finance"
	"github.com/reelworks/backend/internal/domain/identity"
	"github.com/reelworks/backend/internal/domain/production"
	"github.com/reelworks/backend/internal/domain/shared"
	"github.com/reelworks/backend/internal/domain/shared/listing"
	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// itemFetchConcurrency bounds the per-invoice line-item fetches.
const itemFetchConcurrency = 8

// Fetcher is the read-only contract the service needs from the workflow API
// client. Each call may fail independently.
type Fetcher interface {
	ListInvoices(ctx context.Context) ([]rawrecord.Record, error)
	ListInvoiceItems(ctx context.Context, invoiceID string) ([]rawrecord.Record, error)
	ListProjects(ctx context.Context) ([]rawrecord.Record, error)
	ListSharedProjects(ctx context.Context) ([]rawrecord.Record, error)
	ListPayments(ctx context.Context) ([]rawrecord.Record, error)
	GetProfile(ctx context.Context) (rawrecord.Record, error)
}

// BreakdownCache persists computed monthly breakdowns between snapshots.
type BreakdownCache interface {
	Replace(ctx context.Context, userID string, buckets []finance.MonthBucket) error
	Get(ctx context.Context, userID string) ([]finance.MonthBucket, error)
}

// Service owns the snapshot lifecycle and exposes the computed financial
// views. All query methods are pure over the latest installed snapshot.
type Service struct {
	fetcher Fetcher
	cache   BreakdownCache
	logger  *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	gen      atomic.Uint64
}

// NewService creates a new dashboard service. cache may be nil, in which
// case monthly breakdowns are recomputed on every call and never persisted.
func NewService(fetcher Fetcher, cache BreakdownCache, logger *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

// RefreshSnapshot fetches all remote collections, normalizes and reconciles
// them, and installs the result as the current snapshot. Installation is
// last-write-wins on fetch start order: a refresh that started earlier never
// overwrites the snapshot of one that started later, no matter how the
// network interleaves.
func (s *Service) RefreshSnapshot(ctx context.Context) error {
	generation := s.gen.Add(1)

	var (
		rawInvoices []rawrecord.Record
		rawOwned    []rawrecord.Record
		rawShared   []rawrecord.Record
		rawPayments []rawrecord.Record
		rawProfile  rawrecord.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rawInvoices, err = s.fetcher.ListInvoices(gctx)
		return err
	})
	g.Go(func() (err error) {
		rawOwned, err = s.fetcher.ListProjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		rawShared, err = s.fetcher.ListSharedProjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		rawPayments, err = s.fetcher.ListPayments(gctx)
		return err
	})
	g.Go(func() (err error) {
		rawProfile, err = s.fetcher.GetProfile(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}

	snap := &Snapshot{
		Generation: generation,
		FetchedAt:  time.Now(),
		Profile:    identity.NormalizeProfile(rawProfile),
	}

	snap.Invoices = make([]finance.Invoice, len(rawInvoices))
	for i, raw := range rawInvoices {
		snap.Invoices[i] = finance.NormalizeInvoice(raw)
	}

	items, err := s.fetchItems(ctx, snap.Invoices)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}
	snap.Items = finance.EnrichItemsWithMonth(items, snap.Invoices)

	owned := make([]production.Project, len(rawOwned))
	for i, raw := range rawOwned {
		owned[i] = production.NormalizeProject(raw)
	}
	sharedProjects := make([]production.SharedProject, len(rawShared))
	for i, raw := range rawShared {
		sharedProjects[i] = production.NormalizeSharedProject(raw)
	}
	snap.Projects = production.Reconcile(owned, sharedProjects)

	snap.Payments = make([]finance.Payment, len(rawPayments))
	for i, raw := range rawPayments {
		snap.Payments[i] = finance.NormalizePayment(raw)
	}

	if n := snap.WarningCount(); n > 0 {
		s.logger.Warn("snapshot contains malformed numeric fields normalized to zero",
			zap.Int("field_count", n),
			zap.Uint64("generation", generation),
		)
	}

	s.install(snap)
	return nil
}

func (s *Service) fetchItems(ctx context.Context, invoices []finance.Invoice) ([]finance.InvoiceItem, error) {
	results := make([][]finance.InvoiceItem, len(invoices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(itemFetchConcurrency)
	for i, inv := range invoices {
		i, inv := i, inv
		g.Go(func() error {
			raws, err := s.fetcher.ListInvoiceItems(gctx, inv.ID)
			if err != nil {
				return err
			}
			items := make([]finance.InvoiceItem, len(raws))
			for j, raw := range raws {
				items[j] = finance.NormalizeInvoiceItem(raw)
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []finance.InvoiceItem
	for _, batch := range results {
		items = append(items, batch...)
	}
	return items, nil
}

// install makes snap current unless a newer snapshot was installed while
// this one was in flight.
func (s *Service) install(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil && s.snapshot.Generation > snap.Generation {
		s.logger.Info("discarding stale snapshot",
			zap.Uint64("stale_generation", snap.Generation),
			zap.Uint64("current_generation", s.snapshot.Generation),
		)
		return
	}
	s.snapshot = snap
}

// current returns the latest snapshot, or an error when none is loaded yet.
func (s *Service) current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, shared.ErrSnapshotMissing
	}
	return s.snapshot, nil
}

// Profile returns the current user's profile from the latest snapshot.
func (s *Service) Profile() (identity.Profile, error) {
	snap, err := s.current()
	if err != nil {
		return identity.Profile{}, err
	}
	return snap.Profile, nil
}

// FinancialSummary computes the role-specific summary at the given
// granularity over the latest snapshot.
func (s *Service) FinancialSummary(mode finance.ScopeMode) (finance.Summary, error) {
	snap, err := s.current()
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Classify(snap.Profile.Role, snap.Invoices, snap.Projects, snap.Profile.UserID, mode), nil
}

// InvoiceTotals aggregates invoices under the given filter. When the filter
// matches nothing and policy is FallbackUnfiltered, the totals are
// re-aggregated over the whole collection; the second return value reports
// whether that fallback was applied.
func (s *Service) InvoiceTotals(filter finance.InvoiceFilter, policy FallbackPolicy) (finance.InvoiceTotals, bool, error) {
	snap, err := s.current()
	if err != nil {
		return finance.InvoiceTotals{}, false, err
	}

	totals := finance.Aggregate(snap.Invoices, filter)
	if totals.MatchCount == 0 && policy == FallbackUnfiltered && len(snap.Invoices) > 0 {
		s.logger.Info("invoice filter matched nothing, falling back to unfiltered totals",
			zap.String("editor_id", filter.EditorID),
			zap.String("month", filter.Month),
		)
		return finance.Aggregate(snap.Invoices, finance.InvoiceFilter{}), true, nil
	}
	return totals, false, nil
}

// MonthlyBreakdown computes the per-month invoice-item breakdown over the
// latest snapshot and writes it through to the cache. Cache failures are
// logged, never surfaced: the computed figures are already in hand.
func (s *Service) MonthlyBreakdown(ctx context.Context) ([]finance.MonthBucket, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	buckets := finance.MonthlyBreakdown(snap.Items, snap.Invoices)

	for _, b := range buckets {
		if b.Pending.IsNegative() {
			s.logger.Warn("negative pending amount in monthly breakdown",
				zap.String("month", b.Month),
				zap.String("pending", b.Pending.String()),
			)
		}
	}

	if s.cache != nil {
		if err := s.cache.Replace(ctx, snap.Profile.UserID, buckets); err != nil {
			s.logger.Warn("failed to cache monthly breakdown", zap.Error(err))
		}
	}
	return buckets, nil
}

// CachedBreakdown returns the last persisted breakdown for the current user
// without requiring a live snapshot.
func (s *Service) CachedBreakdown(ctx context.Context, userID string) ([]finance.MonthBucket, error) {
	if s.cache == nil {
		return nil, shared.ErrNotFound
	}
	return s.cache.Get(ctx, userID)
}

// Invoices returns the filtered, sorted invoice list.
func (s *Service) Invoices(q InvoiceQuery) ([]finance.Invoice, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	out := listing.Filter(snap.Invoices,
		listing.SearchText(q.Search,
			func(inv finance.Invoice) string { return inv.Month },
			func(inv finance.Invoice) string { return inv.Notes },
			func(inv finance.Invoice) string { return inv.Status.String() },
		),
		listing.Exact(q.Status, func(inv finance.Invoice) string { return inv.Status.String() }),
		listing.Exact(q.EditorID, func(inv finance.Invoice) string { return inv.EditorID }),
		listing.Exact(q.Month, func(inv finance.Invoice) string { return inv.Month }),
	)

	dir := listing.ParseDirection(q.OrderBy)
	switch q.SortBy {
	case "total_amount":
		out = listing.SortBy(out, listing.ByDecimal(func(inv finance.Invoice) decimal.Decimal { return inv.TotalAmount }), dir)
	case "remaining_amount":
		out = listing.SortBy(out, listing.ByDecimal(func(inv finance.Invoice) decimal.Decimal { return inv.RemainingAmount }), dir)
	case "due_date":
		out = listing.SortBy(out, listing.ByTime(func(inv finance.Invoice) *time.Time { return inv.DueDate }), dir)
	case "month":
		out = listing.SortBy(out, listing.ByString(func(inv finance.Invoice) string { return inv.Month }), dir)
	case "created_at", "":
		out = listing.SortBy(out, listing.ByTime(func(inv finance.Invoice) *time.Time { return inv.CreatedAt }), dir)
	}
	return out, nil
}

// Projects returns the reconciled, filtered, sorted project list.
func (s *Service) Projects(q ListQuery) ([]production.Project, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	out := listing.Filter(snap.Projects,
		listing.SearchText(q.Search,
			func(p production.Project) string { return p.Name },
			func(p production.Project) string { return p.Status.String() },
		),
		listing.Exact(q.Status, func(p production.Project) string { return p.Status.String() }),
	)

	dir := listing.ParseDirection(q.OrderBy)
	switch q.SortBy {
	case "name":
		out = listing.SortBy(out, listing.ByString(func(p production.Project) string { return p.Name }), dir)
	case "deadline":
		out = listing.SortBy(out, listing.ByTime(func(p production.Project) *time.Time { return p.Deadline }), dir)
	case "fee":
		out = listing.SortBy(out, listing.ByDecimal(production.Project.DisplayRate), dir)
	case "created_at", "":
		out = listing.SortBy(out, listing.ByTime(func(p production.Project) *time.Time { return p.CreatedAt }), dir)
	}
	return out, nil
}

// Payments returns the filtered, sorted payment list.
func (s *Service) Payments(q ListQuery) ([]finance.Payment, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	out := listing.Filter(snap.Payments,
		listing.SearchText(q.Search,
			func(p finance.Payment) string { return p.Description },
			func(p finance.Payment) string { return p.Method },
			func(p finance.Payment) string { return p.Status.String() },
		),
		listing.Exact(q.Status, func(p finance.Payment) string { return p.Status.String() }),
	)

	dir := listing.ParseDirection(q.OrderBy)
	switch q.SortBy {
	case "amount":
		out = listing.SortBy(out, listing.ByDecimal(func(p finance.Payment) decimal.Decimal { return p.Amount }), dir)
	case "date", "":
		out = listing.SortBy(out, listing.ByTime(func(p finance.Payment) *time.Time { return p.Date }), dir)
	}
	return out, nil
}
