package dashboard

import "time"

// MonthlyAmount is one month's bucket in a value-bearing time series.
type MonthlyAmount struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Overview holds the headline KPIs shown at the top of the dashboard.
type Overview struct {
	TotalClients          int     `json:"totalClients"`
	ActiveClients         int     `json:"activeClients"`
	TotalLeads            int     `json:"totalLeads"`
	ConversionRate        float64 `json:"conversionRate"`
	MonthRevenue          float64 `json:"monthRevenue"`
	MonthRevenueFormatted string  `json:"monthRevenueFormatted"`
	OpenTickets           int     `json:"openTickets"`
	Partners              int     `json:"partners"`
	ActiveCampaigns       int     `json:"activeCampaigns"`
}

// OnboardingStats describes progress through the onboarding pipeline.
type OnboardingStats struct {
	Total              int            `json:"total"`
	ByStage            map[string]int `json:"byStage"`
	CompletedThisMonth int            `json:"completedThisMonth"`
	CompletionRate     float64        `json:"completionRate"`
}

// ClientStats breaks the client base down by status, region, and month.
type ClientStats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	ByRegion     map[string]int `json:"byRegion"`
	NewThisMonth int            `json:"newThisMonth"`
	Monthly      map[string]int `json:"monthly"`
}

// LeadStats breaks leads down by source and status.
type LeadStats struct {
	Total          int            `json:"total"`
	BySource       map[string]int `json:"bySource"`
	ByStatus       map[string]int `json:"byStatus"`
	ConversionRate float64        `json:"conversionRate"`
	Monthly        map[string]int `json:"monthly"`
}

// ContractStats covers the national contracts table.
type ContractStats struct {
	Total    int                      `json:"total"`
	Active   int                      `json:"active"`
	ByStatus map[string]int           `json:"byStatus"`
	Monthly  map[string]MonthlyAmount `json:"monthly"`
}

// RevenueStats combines the invoices and payments tables.
type RevenueStats struct {
	TotalInvoiced          float64                  `json:"totalInvoiced"`
	TotalPaid              float64                  `json:"totalPaid"`
	Outstanding            float64                  `json:"outstanding"`
	AverageInvoice         float64                  `json:"averageInvoice"`
	TotalInvoicedFormatted string                   `json:"totalInvoicedFormatted"`
	Monthly                map[string]MonthlyAmount `json:"monthly"`
}

// QualityStats cross-references the errors and audits tables.
type QualityStats struct {
	TotalErrors   int            `json:"totalErrors"`
	ByType        map[string]int `json:"byType"`
	ErrorRate     float64        `json:"errorRate"`
	RecentErrors  int            `json:"recentErrors"`
	Resubmissions int            `json:"resubmissions"`
}

// Metadata exposes the cache horizon and per-table source counts for
// observability.
type Metadata struct {
	GeneratedAt  time.Time      `json:"generatedAt"`
	CachedUntil  time.Time      `json:"cachedUntil"`
	SourceCounts map[string]int `json:"sourceCounts"`
}

// Document is the assembled statistics snapshot consumed by every dashboard
// view. It is immutable after construction and replaced wholesale on the
// next computation.
type Document struct {
	Overview          Overview        `json:"overview"`
	Onboarding        OnboardingStats `json:"onboarding"`
	Clients           ClientStats     `json:"clients"`
	Leads             LeadStats       `json:"leads"`
	NationalContracts ContractStats   `json:"nationalContracts"`
	Revenue           RevenueStats    `json:"revenue"`
	Quality           QualityStats    `json:"quality"`
	Meta              Metadata        `json:"meta"`
}
