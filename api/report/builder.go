package report

import (
	"fmt"
)

// SummaryField names one scalar column of a summary metric, in the
// order the query returns them.
type SummaryField struct {
	Name string
	Kind FieldKind
}

// QuerySpec is a fully parameterized statement plus the shaping
// metadata Normalize needs. Every caller-supplied filter value travels
// in Args; none is ever spliced into SQL.
type QuerySpec struct {
	Kind  Kind
	SQL   string
	Args  []any
	Shape Shape

	// Value is the coercion applied to series values.
	Value FieldKind
	// FixedLabels, when set, marks a single-row series: the query
	// returns one row with one column per label.
	FixedLabels []string
	// Fields describes the columns of a summary metric.
	Fields []SummaryField
}

// Build validates the filter options and returns the statement for the
// requested metric. Unknown kinds and invalid options fail with
// ErrInvalidParameter before any SQL is produced.
func Build(kind Kind, opts Options) (QuerySpec, error) {
	opts = opts.withDefaults()
	if err := opts.validate(kind); err != nil {
		return QuerySpec{}, err
	}

	switch kind {
	case KindDAU:
		return buildDAU(opts), nil
	case KindCheckinsPerDay:
		return buildCheckinsPerDay(opts), nil
	case KindRevenuePerDay:
		return buildRevenuePerDay(opts), nil
	case KindReservationsPerDay:
		return buildReservationsPerDay(opts), nil
	case KindKPIOverview:
		return buildKPIOverview(), nil
	case KindNewUsers:
		return buildNewUsers(opts), nil
	case KindActiveUsers:
		return buildActiveUsers(), nil
	case KindRetention:
		return buildRetention(), nil
	case KindRevenueByRegion:
		return buildRevenueByRegion(opts), nil
	case KindAcquisitionFunnel:
		return buildAcquisitionFunnel(opts), nil
	case KindLTVCAC:
		return buildLTVCAC(opts), nil
	case KindMissionCompletion:
		return buildMissionCompletion(opts), nil
	case KindStreaks:
		return buildStreaks(), nil
	case KindPartnerStatus:
		return buildPartnerStatus(opts), nil
	case KindPartnerOccupancy:
		return buildPartnerOccupancy(opts), nil
	case KindPartnerKPIs:
		return buildPartnerKPIs(opts), nil
	case KindB2BEngagement:
		return buildB2BEngagement(opts), nil
	case KindB2BCostPerActive:
		return buildB2BCostPerActive(opts), nil
	case KindB2BCampaigns:
		return buildB2BCampaigns(opts), nil
	case KindB2BMEVDelta:
		return buildB2BMEVDelta(opts), nil
	case KindUserActivityHistory:
		return buildUserActivityHistory(opts), nil
	case KindUserGamificationSummary:
		return buildUserGamificationSummary(opts), nil
	case KindMarketingSpend:
		return buildMarketingSpend(opts), nil
	default:
		return QuerySpec{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidParameter, kind)
	}
}

func buildDAU(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindDAU,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT DATE(created_at)::text AS day, COUNT(DISTINCT user_id) AS dau
			FROM consumers.user_time
			WHERE created_at >= now() - $1 * interval '1 day'
			GROUP BY DATE(created_at)
			ORDER BY DATE(created_at) DESC`,
		Args: []any{opts.Days},
	}
}

func buildCheckinsPerDay(opts Options) QuerySpec {
	sql := `
		SELECT DATE(created_at)::text AS day, COUNT(id) AS checkins
		FROM consumers.user_time
		WHERE type = 'CHECKIN'
		  AND created_at >= now() - $1 * interval '1 day'`
	args := []any{opts.Days}
	if opts.EntityID != 0 {
		sql += `
		  AND partner_id = $2`
		args = append(args, opts.EntityID)
	}
	sql += `
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) DESC`
	return QuerySpec{Kind: KindCheckinsPerDay, Shape: ShapeSeries, Value: FieldCount, SQL: sql, Args: args}
}

func buildRevenuePerDay(opts Options) QuerySpec {
	if opts.EntityID != 0 {
		return QuerySpec{
			Kind:  KindRevenuePerDay,
			Shape: ShapeSeries,
			Value: FieldCurrency,
			SQL: `
				SELECT DATE(p.created_at)::text AS day, SUM(p.amount_due)::float8 AS revenue
				FROM consumers.payment p
				JOIN consumers.user_scheduling s ON p.user_scheduling_id = s.id
				JOIN providers.partner_schedule ps ON s.partner_schedule_id = ps.id
				WHERE p.status = 'PAID'
				  AND p.created_at >= now() - $1 * interval '1 day'
				  AND ps.partner_id = $2
				GROUP BY DATE(p.created_at)
				ORDER BY DATE(p.created_at) DESC`,
			Args: []any{opts.Days, opts.EntityID},
		}
	}
	return QuerySpec{
		Kind:  KindRevenuePerDay,
		Shape: ShapeSeries,
		Value: FieldCurrency,
		SQL: `
			SELECT DATE(created_at)::text AS day, SUM(amount_due)::float8 AS revenue
			FROM consumers.payment
			WHERE status = 'PAID'
			  AND created_at >= now() - $1 * interval '1 day'
			GROUP BY DATE(created_at)
			ORDER BY DATE(created_at) DESC`,
		Args: []any{opts.Days},
	}
}

func buildReservationsPerDay(opts Options) QuerySpec {
	if opts.EntityID != 0 {
		return QuerySpec{
			Kind:  KindReservationsPerDay,
			Shape: ShapeSeries,
			Value: FieldCount,
			SQL: `
				SELECT DATE(s.created_at)::text AS day, COUNT(s.id) AS reservations
				FROM consumers.user_scheduling s
				JOIN providers.partner_schedule ps ON s.partner_schedule_id = ps.id
				WHERE s.created_at >= now() - $1 * interval '1 day'
				  AND ps.partner_id = $2
				GROUP BY DATE(s.created_at)
				ORDER BY DATE(s.created_at) DESC`,
			Args: []any{opts.Days, opts.EntityID},
		}
	}
	return QuerySpec{
		Kind:  KindReservationsPerDay,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT DATE(created_at)::text AS day, COUNT(id) AS reservations
			FROM consumers.user_scheduling
			WHERE created_at >= now() - $1 * interval '1 day'
			GROUP BY DATE(created_at)
			ORDER BY DATE(created_at) DESC`,
		Args: []any{opts.Days},
	}
}

func buildKPIOverview() QuerySpec {
	return QuerySpec{
		Kind:  KindKPIOverview,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "total_users", Kind: FieldCount},
			{Name: "total_revenue", Kind: FieldCurrency},
			{Name: "total_partners", Kind: FieldCount},
		},
		SQL: `
			SELECT
				(SELECT COUNT(*) FROM consumers."user") AS total_users,
				(SELECT COALESCE(SUM(amount_due), 0)::float8 FROM consumers.payment WHERE status = 'PAID') AS total_revenue,
				(SELECT COUNT(*) FROM providers.partner WHERE active) AS total_partners`,
	}
}

func buildNewUsers(opts Options) QuerySpec {
	var sql string
	switch opts.GroupBy {
	case GroupByMonth:
		sql = `
			SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS bucket, COUNT(id) AS new_users
			FROM consumers."user"
			WHERE created_at >= now() - $1 * interval '1 day'
			GROUP BY date_trunc('month', created_at)
			ORDER BY date_trunc('month', created_at) ASC`
	case GroupByHour:
		sql = `
			SELECT EXTRACT(HOUR FROM created_at)::int::text AS bucket, COUNT(id) AS new_users
			FROM consumers."user"
			WHERE created_at >= now() - $1 * interval '1 day'
			GROUP BY EXTRACT(HOUR FROM created_at)
			ORDER BY EXTRACT(HOUR FROM created_at) ASC`
	default:
		sql = `
			SELECT DATE(created_at)::text AS bucket, COUNT(id) AS new_users
			FROM consumers."user"
			WHERE created_at >= now() - $1 * interval '1 day'
			GROUP BY DATE(created_at)
			ORDER BY DATE(created_at) ASC`
	}
	return QuerySpec{Kind: KindNewUsers, Shape: ShapeSeries, Value: FieldCount, SQL: sql, Args: []any{opts.Days}}
}

func buildActiveUsers() QuerySpec {
	return QuerySpec{
		Kind:  KindActiveUsers,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "dau", Kind: FieldCount},
			{Name: "wau", Kind: FieldCount},
			{Name: "mau", Kind: FieldCount},
		},
		SQL: `
			SELECT
				(SELECT COUNT(DISTINCT user_id) FROM consumers.user_time WHERE created_at >= now() - interval '1 day') AS dau,
				(SELECT COUNT(DISTINCT user_id) FROM consumers.user_time WHERE created_at >= now() - interval '7 days') AS wau,
				(SELECT COUNT(DISTINCT user_id) FROM consumers.user_time WHERE created_at >= now() - interval '30 days') AS mau`,
	}
}

func buildRetention() QuerySpec {
	return QuerySpec{
		Kind:  KindRetention,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "d1_total", Kind: FieldCount},
			{Name: "d1_retained", Kind: FieldCount},
			{Name: "d1_pct", Kind: FieldPercent},
			{Name: "d7_total", Kind: FieldCount},
			{Name: "d7_retained", Kind: FieldCount},
			{Name: "d7_pct", Kind: FieldPercent},
			{Name: "d30_total", Kind: FieldCount},
			{Name: "d30_retained", Kind: FieldCount},
			{Name: "d30_pct", Kind: FieldPercent},
		},
		SQL: `
			WITH today AS (
				SELECT DISTINCT user_id
				FROM consumers.user_time
				WHERE DATE(created_at) = CURRENT_DATE
			), base AS (
				SELECT
					COUNT(*) FILTER (WHERE DATE(u.created_at) = CURRENT_DATE - 1) AS d1_total,
					COUNT(*) FILTER (WHERE DATE(u.created_at) = CURRENT_DATE - 1 AND a.user_id IS NOT NULL) AS d1_retained,
					COUNT(*) FILTER (WHERE DATE(u.created_at) = CURRENT_DATE - 7) AS d7_total,
					COUNT(*) FILTER (WHERE DATE(u.created_at) = CURRENT_DATE - 7 AND a.user_id IS NOT NULL) AS d7_retained,
					COUNT(*) FILTER (WHERE DATE(u.created_at) = CURRENT_DATE - 30) AS d30_total,
					COUNT(*) FILTER (WHERE DATE(u.created_at) = CURRENT_DATE - 30 AND a.user_id IS NOT NULL) AS d30_retained
				FROM consumers."user" u
				LEFT JOIN today a ON a.user_id = u.id
				WHERE DATE(u.created_at) IN (CURRENT_DATE - 1, CURRENT_DATE - 7, CURRENT_DATE - 30)
			)
			SELECT
				d1_total, d1_retained,
				COALESCE(d1_retained * 100.0 / NULLIF(d1_total, 0), 0)::float8 AS d1_pct,
				d7_total, d7_retained,
				COALESCE(d7_retained * 100.0 / NULLIF(d7_total, 0), 0)::float8 AS d7_pct,
				d30_total, d30_retained,
				COALESCE(d30_retained * 100.0 / NULLIF(d30_total, 0), 0)::float8 AS d30_pct
			FROM base`,
	}
}

func buildRevenueByRegion(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindRevenueByRegion,
		Shape: ShapeSeries,
		Value: FieldCurrency,
		SQL: `
			SELECT COALESCE(u.zip_code, 'unknown') AS region, SUM(p.amount_due)::float8 AS revenue
			FROM consumers.payment p
			JOIN consumers.user_scheduling s ON p.user_scheduling_id = s.id
			JOIN consumers."user" u ON s.user_id = u.id
			WHERE p.status = 'PAID'
			  AND p.created_at >= now() - $1 * interval '1 day'
			GROUP BY COALESCE(u.zip_code, 'unknown')
			ORDER BY SUM(p.amount_due) DESC
			LIMIT 10`,
		Args: []any{opts.Days},
	}
}

func buildAcquisitionFunnel(opts Options) QuerySpec {
	return QuerySpec{
		Kind:        KindAcquisitionFunnel,
		Shape:       ShapeSeries,
		Value:       FieldCount,
		FixedLabels: []string{"visited", "started_signup", "completed_signup"},
		SQL: `
			SELECT
				COUNT(DISTINCT session_id) FILTER (WHERE event_name = 'visited_site') AS visited,
				COUNT(DISTINCT session_id) FILTER (WHERE event_name = 'started_signup') AS started_signup,
				COUNT(DISTINCT session_id) FILTER (WHERE event_name = 'completed_signup') AS completed_signup
			FROM analytics.web_events
			WHERE created_at >= now() - $1 * interval '1 day'`,
		Args: []any{opts.Days},
	}
}

func buildLTVCAC(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindLTVCAC,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "ltv", Kind: FieldCurrency},
			{Name: "cac_30d", Kind: FieldCurrency},
		},
		SQL: `
			WITH totals AS (
				SELECT
					(SELECT COALESCE(SUM(amount_due), 0) FROM consumers.payment WHERE status = 'PAID') AS revenue,
					(SELECT COUNT(*) FROM consumers."user") AS users,
					(SELECT COALESCE(SUM(cost), 0) FROM analytics.marketing_costs WHERE date >= CURRENT_DATE - $1::int) AS spend,
					(SELECT COUNT(*) FROM consumers."user" WHERE created_at >= now() - $1 * interval '1 day') AS new_users
			)
			SELECT
				COALESCE(revenue / NULLIF(users, 0), 0)::float8 AS ltv,
				COALESCE(spend / NULLIF(new_users, 0), 0)::float8 AS cac_30d
			FROM totals`,
		Args: []any{opts.Days},
	}
}

func buildMissionCompletion(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindMissionCompletion,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT m.name, COUNT(um.user_id) AS completions
			FROM consumers.missions m
			LEFT JOIN consumers.user_missions um
			  ON um.mission_id = m.id
			 AND um.completed_at >= now() - $1 * interval '1 day'
			GROUP BY m.id, m.name
			ORDER BY COUNT(um.user_id) DESC, m.name ASC`,
		Args: []any{opts.Days},
	}
}

func buildStreaks() QuerySpec {
	return QuerySpec{
		Kind:  KindStreaks,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT s.active_days::text || 'd' AS streak, COUNT(*) AS users
			FROM (
				SELECT user_id, COUNT(DISTINCT DATE(created_at)) AS active_days
				FROM consumers.user_time
				WHERE created_at >= now() - interval '7 days'
				GROUP BY user_id
			) s
			GROUP BY s.active_days
			ORDER BY s.active_days DESC`,
	}
}

func buildPartnerStatus(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindPartnerStatus,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT s.status, COUNT(s.id) AS reservations
			FROM consumers.user_scheduling s
			JOIN providers.partner_schedule ps ON s.partner_schedule_id = ps.id
			WHERE ps.partner_id = $1
			GROUP BY s.status
			ORDER BY COUNT(s.id) DESC, s.status ASC`,
		Args: []any{opts.EntityID},
	}
}

func buildPartnerOccupancy(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindPartnerOccupancy,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT ps.hour::text || ':00' AS slot, COUNT(s.id) AS reservations
			FROM consumers.user_scheduling s
			JOIN providers.partner_schedule ps ON s.partner_schedule_id = ps.id
			WHERE ps.partner_id = $1
			  AND ps.hour IS NOT NULL
			GROUP BY ps.hour
			ORDER BY ps.hour ASC`,
		Args: []any{opts.EntityID},
	}
}

func buildPartnerKPIs(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindPartnerKPIs,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "nps_avg", Kind: FieldScore},
			{Name: "payout_30d", Kind: FieldCurrency},
		},
		SQL: `
			SELECT
				COALESCE((
					SELECT AVG(rating)
					FROM consumers.user_health_feedback
					WHERE feedback_type = 'NPS_PARTNER' AND related_entity_id = $1
				), 0)::float8 AS nps_avg,
				COALESCE((
					SELECT SUM(p.transferred_value)
					FROM consumers.payment p
					JOIN consumers.user_scheduling s ON p.user_scheduling_id = s.id
					JOIN providers.partner_schedule ps ON s.partner_schedule_id = ps.id
					WHERE ps.partner_id = $1
					  AND p.status = 'PAID'
					  AND p.created_at >= now() - $2 * interval '1 day'
				), 0)::float8 AS payout_30d`,
		Args: []any{opts.EntityID, opts.Days},
	}
}

func buildB2BEngagement(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindB2BEngagement,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "total_collaborators", Kind: FieldCount},
			{Name: "active_30d", Kind: FieldCount},
			{Name: "adoption_pct", Kind: FieldPercent},
		},
		SQL: `
			WITH collaborators AS (
				SELECT ccc.user_id
				FROM companies.companies_client_collaborator ccc
				JOIN consumers."user" u ON ccc.user_id = u.id
				WHERE ccc.client_id = $1 AND u.active
			), actives AS (
				SELECT DISTINCT t.user_id
				FROM consumers.user_time t
				JOIN collaborators c ON t.user_id = c.user_id
				WHERE t.created_at >= now() - $2 * interval '1 day'
			)
			SELECT
				(SELECT COUNT(*) FROM collaborators) AS total_collaborators,
				(SELECT COUNT(*) FROM actives) AS active_30d,
				COALESCE(
					(SELECT COUNT(*) FROM actives) * 100.0 / NULLIF((SELECT COUNT(*) FROM collaborators), 0),
				0)::float8 AS adoption_pct`,
		Args: []any{opts.EntityID, opts.Days},
	}
}

func buildB2BCostPerActive(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindB2BCostPerActive,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "client_revenue", Kind: FieldCurrency},
			{Name: "cost_per_active", Kind: FieldCurrency},
		},
		SQL: `
			WITH collaborators AS (
				SELECT ccc.user_id
				FROM companies.companies_client_collaborator ccc
				JOIN consumers."user" u ON ccc.user_id = u.id
				WHERE ccc.client_id = $1 AND u.active
			), actives AS (
				SELECT DISTINCT t.user_id
				FROM consumers.user_time t
				JOIN collaborators c ON t.user_id = c.user_id
				WHERE t.created_at >= now() - $2 * interval '1 day'
			), client_revenue AS (
				SELECT COALESCE(SUM(p.amount_due), 0) AS total
				FROM consumers.payment p
				JOIN consumers.user_scheduling s ON p.user_scheduling_id = s.id
				JOIN collaborators c ON s.user_id = c.user_id
				WHERE p.status = 'PAID'
			), plan_price AS (
				SELECT COALESCE(cp.price, 0) AS price
				FROM companies.companies_client cc
				LEFT JOIN companies.companies_plan cp ON cc.plan_id = cp.id
				WHERE cc.id = $1
			)
			SELECT
				(SELECT total FROM client_revenue)::float8 AS client_revenue,
				COALESCE(
					(SELECT price FROM plan_price) / NULLIF((SELECT COUNT(*) FROM actives), 0),
				0)::float8 AS cost_per_active`,
		Args: []any{opts.EntityID, opts.Days},
	}
}

func buildB2BCampaigns(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindB2BCampaigns,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT c.name, COUNT(p.user_id) AS participants
			FROM companies.campaigns c
			LEFT JOIN companies.user_campaign_participation p ON p.campaign_id = c.id
			WHERE c.client_id = $1
			GROUP BY c.id, c.name
			ORDER BY COUNT(p.user_id) DESC, c.name ASC`,
		Args: []any{opts.EntityID},
	}
}

func buildB2BMEVDelta(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindB2BMEVDelta,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "old_score", Kind: FieldScore},
			{Name: "new_score", Kind: FieldScore},
			{Name: "delta", Kind: FieldScore},
		},
		SQL: `
			WITH scored AS (
				SELECT m.score,
					ROW_NUMBER() OVER (PARTITION BY m.user_id ORDER BY m.calculated_at ASC) AS rn_old,
					ROW_NUMBER() OVER (PARTITION BY m.user_id ORDER BY m.calculated_at DESC) AS rn_new
				FROM consumers.user_mev_score m
				JOIN companies.companies_client_collaborator ccc ON m.user_id = ccc.user_id
				WHERE ccc.client_id = $1
				  AND m.calculated_at >= CURRENT_DATE - $2::int
			), averages AS (
				SELECT
					(SELECT COALESCE(AVG(score), 0) FROM scored WHERE rn_old = 1) AS old_score,
					(SELECT COALESCE(AVG(score), 0) FROM scored WHERE rn_new = 1) AS new_score
			)
			SELECT
				old_score::float8,
				new_score::float8,
				(new_score - old_score)::float8 AS delta
			FROM averages`,
		Args: []any{opts.EntityID, opts.Days},
	}
}

func buildUserActivityHistory(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindUserActivityHistory,
		Shape: ShapeSeries,
		Value: FieldCount,
		SQL: `
			SELECT DATE(created_at)::text AS day, COUNT(id) AS checkins
			FROM consumers.user_time
			WHERE user_id = $1
			  AND type = 'CHECKIN'
			  AND created_at >= now() - $2 * interval '1 day'
			GROUP BY DATE(created_at)
			ORDER BY DATE(created_at) ASC`,
		Args: []any{opts.EntityID, opts.Days},
	}
}

func buildUserGamificationSummary(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindUserGamificationSummary,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "total_points", Kind: FieldCount},
			{Name: "total_stamps", Kind: FieldCount},
			{Name: "active_minutes_30d", Kind: FieldCount},
			{Name: "calories_30d", Kind: FieldCount},
		},
		SQL: `
			SELECT
				COALESCE((
					SELECT r.points
					FROM consumers."user" u
					LEFT JOIN consumers.rank r ON u.rank_id = r.id
					WHERE u.id = $1
				), 0) AS total_points,
				(SELECT COUNT(*) FROM consumers.user_health_stamp WHERE user_id = $1) AS total_stamps,
				COALESCE((
					SELECT SUM(EXTRACT(EPOCH FROM (finished_at - created_at)) / 60.0)
					FROM consumers.user_time
					WHERE user_id = $1
					  AND type = 'CHECKIN'
					  AND finished_at IS NOT NULL
					  AND created_at >= now() - $2 * interval '1 day'
				), 0)::float8 AS active_minutes_30d,
				COALESCE((
					SELECT SUM(uhp.value)
					FROM consumers.user_health_point uhp
					JOIN consumers.health_point hp ON uhp.health_point_id = hp.id
					WHERE uhp.user_id = $1
					  AND hp.name = 'Calories Burned'
					  AND uhp.recorded_at >= now() - $2 * interval '1 day'
				), 0)::float8 AS calories_30d`,
		Args: []any{opts.EntityID, opts.Days},
	}
}

func buildMarketingSpend(opts Options) QuerySpec {
	return QuerySpec{
		Kind:  KindMarketingSpend,
		Shape: ShapeSeries,
		Value: FieldCurrency,
		SQL: `
			SELECT date::text AS day, SUM(cost)::float8 AS spend
			FROM analytics.marketing_costs
			WHERE date >= CURRENT_DATE - $1::int
			GROUP BY date
			ORDER BY date ASC`,
		Args: []any{opts.Days},
	}
}
