package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pulseboard/internal/airtable"
	"pulseboard/internal/cache"
	"pulseboard/internal/dashboard/mocks"
)

var sourceTables = []string{
	"clients", "leads", "onboarding", "contracts", "invoices", "payments",
	"errors", "audits", "tickets", "partners", "campaigns", "resubmissions",
}

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	fetcher *mocks.MockTableFetcher
	store   *cache.Cache
	service *Service
	now     time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.fetcher = mocks.NewMockTableFetcher(s.ctrl)
	s.store = cache.New(time.Minute)
	s.now = time.Date(2024, 9, 20, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.fetcher, s.store, logger,
		WithTTL(time.Minute),
		WithClock(func() time.Time { return s.now }),
	)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func rec(fields map[string]any) airtable.Record {
	return airtable.Record{ID: "rec", Fields: fields}
}

// expectFetches registers one expected fetch per source table. Tables in
// data return their records; tables in failing return their error; the rest
// return empty sets.
func (s *ServiceSuite) expectFetches(times int, data map[string][]airtable.Record, failing map[string]error) {
	for _, table := range sourceTables {
		call := s.fetcher.EXPECT().FetchTable(gomock.Any(), table, gomock.Any()).Times(times)
		if err, ok := failing[table]; ok {
			call.Return(nil, err)
		} else {
			call.Return(data[table], nil)
		}
	}
}

func fixtureData() map[string][]airtable.Record {
	return map[string][]airtable.Record{
		"clients": {
			rec(map[string]any{"Status": "Active", "Region": "North", "Created": "2024-09-05"}),
			rec(map[string]any{"Status": "Active", "Region": "South", "Created": "2024-08-15"}),
			rec(map[string]any{"Status": "Churned", "Region": "North", "Created": "2023-12-01"}),
		},
		"leads": {
			rec(map[string]any{"Status": "Converted", "Source": "Web", "Created": "2024-09-01"}),
			rec(map[string]any{"Status": "New", "Source": "Referral", "Created": "2024-09-02"}),
		},
		"onboarding": {
			rec(map[string]any{"Stage": "Completed", "Created": "2024-09-15"}),
			rec(map[string]any{"Stage": "Documents", "Created": "2024-09-16"}),
		},
		"contracts": {
			rec(map[string]any{"Status": "Active", "Amount": float64(2000), "Created": "2024-09-01"}),
			rec(map[string]any{"Status": "Draft", "Amount": float64(100), "Created": "2024-08-20"}),
		},
		"invoices": {
			rec(map[string]any{"Amount": float64(1000), "Created": "2024-09-10"}),
			rec(map[string]any{"Amount": float64(500), "Created": "2024-08-10"}),
		},
		"payments": {
			rec(map[string]any{"Amount": float64(600), "Created": "2024-09-12"}),
		},
		"errors": {
			rec(map[string]any{"Type": "Validation", "Created": "2024-09-18"}),
		},
		"audits": {
			rec(map[string]any{}), rec(map[string]any{}), rec(map[string]any{}), rec(map[string]any{}),
		},
		"tickets": {
			rec(map[string]any{"Status": "Open"}),
			rec(map[string]any{"Status": "Closed"}),
		},
		"partners": {
			rec(map[string]any{}), rec(map[string]any{}), rec(map[string]any{}),
		},
		"campaigns": {
			rec(map[string]any{"Status": "Active"}),
			rec(map[string]any{"Status": "Finished"}),
		},
		"resubmissions": {
			rec(map[string]any{}), rec(map[string]any{}),
		},
	}
}

func (s *ServiceSuite) TestAssemblesAllSections() {
	s.expectFetches(1, fixtureData(), nil)

	doc, err := s.service.GetStatistics(context.Background(), false)
	s.Require().NoError(err)
	s.Require().NotNil(doc)

	s.Equal(3, doc.Clients.Total)
	s.Equal(map[string]int{"Active": 2, "Churned": 1}, doc.Clients.ByStatus)
	s.Equal(map[string]int{"North": 2, "South": 1}, doc.Clients.ByRegion)
	s.Equal(1, doc.Clients.NewThisMonth)
	s.Equal(map[string]int{"2024-09": 1, "2024-08": 1, "2023-12": 1}, doc.Clients.Monthly)

	s.Equal(2, doc.Leads.Total)
	s.Equal(50.0, doc.Leads.ConversionRate)
	s.Equal(map[string]int{"Web": 1, "Referral": 1}, doc.Leads.BySource)

	s.Equal(50.0, doc.Onboarding.CompletionRate)
	s.Equal(1, doc.Onboarding.CompletedThisMonth)

	s.Equal(1, doc.NationalContracts.Active)
	s.Equal(MonthlyAmount{Count: 1, Amount: 2000}, doc.NationalContracts.Monthly["2024-09"])

	s.InDelta(1500, doc.Revenue.TotalInvoiced, 1e-9)
	s.InDelta(600, doc.Revenue.TotalPaid, 1e-9)
	s.InDelta(900, doc.Revenue.Outstanding, 1e-9)
	s.InDelta(750, doc.Revenue.AverageInvoice, 1e-9)
	s.Equal("€1,500", doc.Revenue.TotalInvoicedFormatted)

	s.Equal(1, doc.Quality.TotalErrors)
	s.Equal(25.0, doc.Quality.ErrorRate)
	s.Equal(1, doc.Quality.RecentErrors)
	s.Equal(2, doc.Quality.Resubmissions)

	s.Equal(2, doc.Overview.ActiveClients)
	s.InDelta(1000, doc.Overview.MonthRevenue, 1e-9)
	s.Equal("€1,000", doc.Overview.MonthRevenueFormatted)
	s.Equal(1, doc.Overview.OpenTickets)
	s.Equal(3, doc.Overview.Partners)
	s.Equal(1, doc.Overview.ActiveCampaigns)

	s.Equal(s.now, doc.Meta.GeneratedAt)
	s.Equal(s.now.Add(time.Minute), doc.Meta.CachedUntil)
	s.Equal(3, doc.Meta.SourceCounts["clients"])
	s.Equal(4, doc.Meta.SourceCounts["audits"])
}

func (s *ServiceSuite) TestDegradedTablesProduceZeroSections() {
	failing := map[string]error{
		"clients": errors.New("rate limited"),
		"errors":  errors.New("upstream down"),
	}
	s.expectFetches(1, fixtureData(), failing)

	doc, err := s.service.GetStatistics(context.Background(), false)
	s.Require().NoError(err, "per-table failures must never abort assembly")

	// Degraded sections render zeros with well-formed empty maps.
	s.Zero(doc.Clients.Total)
	s.NotNil(doc.Clients.ByStatus)
	s.Empty(doc.Clients.ByStatus)
	s.Zero(doc.Quality.TotalErrors)
	s.Zero(doc.Quality.ErrorRate)

	// Unrelated sections still reflect their tables.
	s.Equal(2, doc.Leads.Total)
	s.Equal(2, doc.Quality.Resubmissions)
	s.Zero(doc.Meta.SourceCounts["clients"])
	s.Equal(2, doc.Meta.SourceCounts["leads"])
}

func (s *ServiceSuite) TestAllTablesFailedStillStructurallyValid() {
	failing := make(map[string]error, len(sourceTables))
	for _, table := range sourceTables {
		failing[table] = errors.New("unreachable")
	}
	s.expectFetches(1, nil, failing)

	doc, err := s.service.GetStatistics(context.Background(), false)
	s.Require().NoError(err)
	s.Require().NotNil(doc)

	s.Zero(doc.Overview.TotalClients)
	s.Zero(doc.Revenue.TotalInvoiced)
	s.Equal("€0", doc.Revenue.TotalInvoicedFormatted)
	s.NotNil(doc.Leads.BySource)
	s.NotNil(doc.NationalContracts.Monthly)
	s.NotNil(doc.Meta.SourceCounts)
}

func (s *ServiceSuite) TestSecondCallWithinTTLServesCache() {
	s.expectFetches(1, fixtureData(), nil)

	first, err := s.service.GetStatistics(context.Background(), false)
	s.Require().NoError(err)

	// No further fetches are expected; gomock fails the test otherwise.
	second, err := s.service.GetStatistics(context.Background(), false)
	s.Require().NoError(err)
	s.Same(first, second)
}

func (s *ServiceSuite) TestForceRefreshBypassesCache() {
	s.expectFetches(2, fixtureData(), nil)

	first, err := s.service.GetStatistics(context.Background(), false)
	s.Require().NoError(err)

	second, err := s.service.GetStatistics(context.Background(), true)
	s.Require().NoError(err)
	s.NotSame(first, second)
}
