package report

// Kind identifies one of the metrics the reporting API can compute.
// The set is closed: Build rejects anything not listed here.
type Kind string

const (
	KindDAU                     Kind = "dau"
	KindCheckinsPerDay          Kind = "checkins_per_day"
	KindRevenuePerDay           Kind = "revenue_per_day"
	KindReservationsPerDay      Kind = "reservations_per_day"
	KindKPIOverview             Kind = "kpi_overview"
	KindNewUsers                Kind = "new_users"
	KindActiveUsers             Kind = "active_users"
	KindRetention               Kind = "retention"
	KindRevenueByRegion         Kind = "revenue_by_region"
	KindAcquisitionFunnel       Kind = "acquisition_funnel"
	KindLTVCAC                  Kind = "ltv_cac"
	KindMissionCompletion       Kind = "mission_completion"
	KindStreaks                 Kind = "streaks"
	KindPartnerStatus           Kind = "partner_status"
	KindPartnerOccupancy        Kind = "partner_occupancy"
	KindPartnerKPIs             Kind = "partner_kpis"
	KindB2BEngagement           Kind = "b2b_engagement"
	KindB2BCostPerActive        Kind = "b2b_cost_per_active"
	KindB2BCampaigns            Kind = "b2b_campaign_participation"
	KindB2BMEVDelta             Kind = "b2b_mev_delta"
	KindUserActivityHistory     Kind = "user_activity_history"
	KindUserGamificationSummary Kind = "user_gamification_summary"
	KindMarketingSpend          Kind = "marketing_spend"
)

// Shape describes the canonical response layout of a metric.
type Shape int

const (
	// ShapeSeries is a pair of parallel arrays: labels and values.
	ShapeSeries Shape = iota
	// ShapeSummary is a flat map of named scalar values.
	ShapeSummary
)

// FieldKind controls how a raw database value is coerced for output.
type FieldKind int

const (
	// FieldCount truncates toward zero.
	FieldCount FieldKind = iota
	// FieldCurrency rounds to two decimal places.
	FieldCurrency
	// FieldScore rounds to one decimal place.
	FieldScore
	// FieldPercent rounds to one decimal place.
	FieldPercent
)

// entityRequired lists the kinds that cannot run without an entity id.
var entityRequired = map[Kind]bool{
	KindPartnerStatus:           true,
	KindPartnerOccupancy:        true,
	KindPartnerKPIs:             true,
	KindB2BEngagement:           true,
	KindB2BCostPerActive:        true,
	KindB2BCampaigns:            true,
	KindB2BMEVDelta:             true,
	KindUserActivityHistory:     true,
	KindUserGamificationSummary: true,
}
