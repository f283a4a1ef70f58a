// Package dashboard assembles the nested statistics document consumed by
// every dashboard view: one coordinated pass over the twelve source tables,
// with whole-document caching.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"pulseboard/internal/airtable"
	"pulseboard/internal/cache"
	"pulseboard/internal/platform/metrics"
	"pulseboard/internal/platform/tracer"
	"pulseboard/internal/stats"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks TableFetcher

// TableFetcher retrieves the full contents of one named table.
type TableFetcher interface {
	FetchTable(ctx context.Context, table string, opts airtable.Options) ([]airtable.Record, error)
}

// statsCacheKey is the fixed cache key for the assembled document.
const statsCacheKey = "dashboard:statistics"

// Candidate field names per logical metric, tried in priority order. The
// upstream base has drifted between schema variants; declaring the lists
// here keeps the "which field means X" policy visible and testable.
var (
	statusFields = []string{"Status", "Statut", "State"}
	stageFields  = []string{"Stage", "Step", "Phase"}
	regionFields = []string{"Region", "Région", "Area"}
	sourceFields = []string{"Source", "Origin", "Channel"}
	amountFields = []string{"Amount", "Montant", "Total"}
	dateFields   = []string{"Created", "Date", "Created At"}
	typeFields   = []string{"Type", "Error Type", "Category"}
)

// Well-known status values the KPIs key off.
const (
	statusActive    = "Active"
	statusConverted = "Converted"
	statusCompleted = "Completed"
	statusOpen      = "Open"
)

// recentErrorWindowDays bounds the "recent errors" quality KPI.
const recentErrorWindowDays = 30

// Service orchestrates the parallel table fetches and reduces them into a
// Document. Per-table failures degrade to empty record sets; a dashboard
// that renders partial data beats one that renders an error page.
type Service struct {
	fetcher TableFetcher
	cache   *cache.Cache
	logger  *slog.Logger
	tracer  tracer.Tracer
	ttl     time.Duration
	now     func() time.Time
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithTTL overrides how long an assembled document stays cached.
func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithTracer attaches a tracer for assembly spans.
func WithTracer(t tracer.Tracer) ServiceOption {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock injects a clock, used by tests for deterministic month buckets.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a statistics service backed by the given fetcher and cache.
func NewService(fetcher TableFetcher, store *cache.Cache, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		cache:   store,
		logger:  logger,
		tracer:  tracer.NewNoop(),
		ttl:     5 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetStatistics returns the assembled statistics document, serving a cached
// copy when one is live unless forceRefresh bypasses it. The error return is
// reserved for context cancellation; upstream failures never surface here.
func (s *Service) GetStatistics(ctx context.Context, forceRefresh bool) (*Document, error) {
	if !forceRefresh {
		if v, ok := s.cache.Get(statsCacheKey); ok {
			if doc, ok := v.(*Document); ok {
				metrics.CacheHits.WithLabelValues("statistics").Inc()
				return doc, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("statistics").Inc()
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.build_statistics")
	start := time.Now()
	doc := s.build(ctx)
	metrics.StatisticsBuildDuration.Observe(time.Since(start).Seconds())
	span.End(nil)

	s.cache.Set(statsCacheKey, doc, s.ttl)
	return doc, nil
}

// tableSets holds one slot per source table. Each fetch goroutine writes to
// its own field, so no synchronization is needed beyond the errgroup wait.
type tableSets struct {
	clients       []airtable.Record
	leads         []airtable.Record
	onboarding    []airtable.Record
	contracts     []airtable.Record
	invoices      []airtable.Record
	payments      []airtable.Record
	errorLogs     []airtable.Record
	audits        []airtable.Record
	tickets       []airtable.Record
	partners      []airtable.Record
	campaigns     []airtable.Record
	resubmissions []airtable.Record
}

func (s *Service) fetchAll(ctx context.Context) *tableSets {
	g, ctx := errgroup.WithContext(ctx)
	var ts tableSets

	s.launchFetch(ctx, g, "clients", &ts.clients)
	s.launchFetch(ctx, g, "leads", &ts.leads)
	s.launchFetch(ctx, g, "onboarding", &ts.onboarding)
	s.launchFetch(ctx, g, "contracts", &ts.contracts)
	s.launchFetch(ctx, g, "invoices", &ts.invoices)
	s.launchFetch(ctx, g, "payments", &ts.payments)
	s.launchFetch(ctx, g, "errors", &ts.errorLogs)
	s.launchFetch(ctx, g, "audits", &ts.audits)
	s.launchFetch(ctx, g, "tickets", &ts.tickets)
	s.launchFetch(ctx, g, "partners", &ts.partners)
	s.launchFetch(ctx, g, "campaigns", &ts.campaigns)
	s.launchFetch(ctx, g, "resubmissions", &ts.resubmissions)

	// launchFetch never returns an error; degradation happens inside.
	_ = g.Wait()
	return &ts
}

func (s *Service) launchFetch(ctx context.Context, g *errgroup.Group, table string, dst *[]airtable.Record) {
	g.Go(func() error {
		records, err := s.fetcher.FetchTable(ctx, table, airtable.Options{})
		if err != nil {
			metrics.TablesDegraded.Inc()
			s.logger.WarnContext(ctx, "table fetch degraded to empty",
				"table", table,
				"error", err,
			)
			return nil
		}
		*dst = records
		return nil
	})
}

func (s *Service) build(ctx context.Context) *Document {
	ts := s.fetchAll(ctx)
	now := s.now()

	leads := buildLeadStats(ts.leads)

	return &Document{
		Overview:          buildOverview(ts, leads.ConversionRate, now),
		Onboarding:        buildOnboardingStats(ts.onboarding, now),
		Clients:           buildClientStats(ts.clients, now),
		Leads:             leads,
		NationalContracts: buildContractStats(ts.contracts),
		Revenue:           buildRevenueStats(ts.invoices, ts.payments),
		Quality:           buildQualityStats(ts.errorLogs, ts.audits, ts.resubmissions, now),
		Meta: Metadata{
			GeneratedAt: now,
			CachedUntil: now.Add(s.ttl),
			SourceCounts: map[string]int{
				"clients":       len(ts.clients),
				"leads":         len(ts.leads),
				"onboarding":    len(ts.onboarding),
				"contracts":     len(ts.contracts),
				"invoices":      len(ts.invoices),
				"payments":      len(ts.payments),
				"errors":        len(ts.errorLogs),
				"audits":        len(ts.audits),
				"tickets":       len(ts.tickets),
				"partners":      len(ts.partners),
				"campaigns":     len(ts.campaigns),
				"resubmissions": len(ts.resubmissions),
			},
		},
	}
}

func buildOverview(ts *tableSets, leadConversionRate float64, now time.Time) Overview {
	clientStatus := stats.PickField(ts.clients, statusFields...)
	invoiceDate := stats.PickField(ts.invoices, dateFields...)
	invoiceAmount := stats.PickField(ts.invoices, amountFields...)
	monthInvoices := stats.CurrentMonthRecords(ts.invoices, invoiceDate, now)
	monthRevenue := stats.SumField(monthInvoices, invoiceAmount)

	return Overview{
		TotalClients:          len(ts.clients),
		ActiveClients:         len(stats.FilterRecords(ts.clients, clientStatus, statusActive)),
		TotalLeads:            len(ts.leads),
		ConversionRate:        leadConversionRate,
		MonthRevenue:          monthRevenue,
		MonthRevenueFormatted: stats.FormatCurrency(monthRevenue),
		OpenTickets:           len(stats.FilterRecords(ts.tickets, stats.PickField(ts.tickets, statusFields...), statusOpen)),
		Partners:              len(ts.partners),
		ActiveCampaigns:       len(stats.FilterRecords(ts.campaigns, stats.PickField(ts.campaigns, statusFields...), statusActive)),
	}
}

func buildOnboardingStats(records []airtable.Record, now time.Time) OnboardingStats {
	stageField := stats.PickField(records, stageFields...)
	dateField := stats.PickField(records, dateFields...)
	completed := stats.FilterRecords(records, stageField, statusCompleted)

	return OnboardingStats{
		Total:              len(records),
		ByStage:            stats.CountByField(records, stageField),
		CompletedThisMonth: len(stats.CurrentMonthRecords(completed, dateField, now)),
		CompletionRate:     stats.Pct(float64(len(completed)), float64(len(records))),
	}
}

func buildClientStats(records []airtable.Record, now time.Time) ClientStats {
	dateField := stats.PickField(records, dateFields...)

	return ClientStats{
		Total:        len(records),
		ByStatus:     stats.CountByField(records, stats.PickField(records, statusFields...)),
		ByRegion:     stats.CountByField(records, stats.PickField(records, regionFields...)),
		NewThisMonth: len(stats.CurrentMonthRecords(records, dateField, now)),
		Monthly:      monthlyCounts(records, dateField),
	}
}

func buildLeadStats(records []airtable.Record) LeadStats {
	statusField := stats.PickField(records, statusFields...)
	dateField := stats.PickField(records, dateFields...)
	converted := stats.FilterRecords(records, statusField, statusConverted)

	return LeadStats{
		Total:          len(records),
		BySource:       stats.CountByField(records, stats.PickField(records, sourceFields...)),
		ByStatus:       stats.CountByField(records, statusField),
		ConversionRate: stats.Pct(float64(len(converted)), float64(len(records))),
		Monthly:        monthlyCounts(records, dateField),
	}
}

func buildContractStats(records []airtable.Record) ContractStats {
	statusField := stats.PickField(records, statusFields...)
	dateField := stats.PickField(records, dateFields...)
	amountField := stats.PickField(records, amountFields...)

	return ContractStats{
		Total:    len(records),
		Active:   len(stats.FilterRecords(records, statusField, statusActive)),
		ByStatus: stats.CountByField(records, statusField),
		Monthly:  monthlyAmounts(records, dateField, amountField),
	}
}

func buildRevenueStats(invoices, payments []airtable.Record) RevenueStats {
	invoiceAmount := stats.PickField(invoices, amountFields...)
	invoiceDate := stats.PickField(invoices, dateFields...)
	paymentAmount := stats.PickField(payments, amountFields...)

	totalInvoiced := stats.SumField(invoices, invoiceAmount)
	totalPaid := stats.SumField(payments, paymentAmount)
	outstanding := totalInvoiced - totalPaid
	if outstanding < 0 {
		// Credit balances render as zero outstanding.
		outstanding = 0
	}

	return RevenueStats{
		TotalInvoiced:          totalInvoiced,
		TotalPaid:              totalPaid,
		Outstanding:            outstanding,
		AverageInvoice:         stats.AvgField(invoices, invoiceAmount),
		TotalInvoicedFormatted: stats.FormatCurrency(totalInvoiced),
		Monthly:                monthlyAmounts(invoices, invoiceDate, invoiceAmount),
	}
}

func buildQualityStats(errorLogs, audits, resubmissions []airtable.Record, now time.Time) QualityStats {
	dateField := stats.PickField(errorLogs, dateFields...)

	return QualityStats{
		TotalErrors:   len(errorLogs),
		ByType:        stats.CountByField(errorLogs, stats.PickField(errorLogs, typeFields...)),
		ErrorRate:     stats.Pct(float64(len(errorLogs)), float64(len(audits))),
		RecentErrors:  len(stats.RecentRecords(errorLogs, dateField, recentErrorWindowDays, now)),
		Resubmissions: len(resubmissions),
	}
}

func monthlyCounts(records []airtable.Record, dateField string) map[string]int {
	counts := make(map[string]int)
	for month, bucket := range stats.GroupByMonth(records, dateField) {
		counts[month] = len(bucket)
	}
	return counts
}

func monthlyAmounts(records []airtable.Record, dateField, amountField string) map[string]MonthlyAmount {
	out := make(map[string]MonthlyAmount)
	for month, bucket := range stats.GroupByMonth(records, dateField) {
		out[month] = MonthlyAmount{
			Count:  len(bucket),
			Amount: stats.SumField(bucket, amountField),
		}
	}
	return out
}
