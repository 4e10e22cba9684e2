package handlers_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalabs/pulse/api/handlers"
	apitesting "github.com/vitalabs/pulse/api/testing"
)

type seriesResponse struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func setupHandler(t *testing.T) (*handlers.Handler, *pgxpool.Pool) {
	pool := apitesting.SetupTestPostgres(t, testDB)
	return handlers.New(pool, slog.Default()), pool
}

func get(t *testing.T, fn http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	fn(rr, req)
	return rr
}

func decodeSeries(t *testing.T, rr *httptest.ResponseRecorder) seriesResponse {
	var out seriesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func decodeSummary(t *testing.T, rr *httptest.ResponseRecorder) map[string]float64 {
	var out map[string]float64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func createUser(t *testing.T, pool *pgxpool.Pool, email string, createdAt time.Time) int64 {
	var id int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO consumers."user" (name, email, created_at)
		VALUES ('Test User', $1, $2)
		RETURNING id`, email, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func createPartner(t *testing.T, pool *pgxpool.Pool, name, cnpj string) int64 {
	var id int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO providers.partner (name, cnpj) VALUES ($1, $2)
		RETURNING id`, name, cnpj).Scan(&id)
	require.NoError(t, err)
	return id
}

func createSchedule(t *testing.T, pool *pgxpool.Pool, partnerID int64, hour int, value float64) int64 {
	var id int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO providers.partner_schedule (partner_id, date, hour, value)
		VALUES ($1, CURRENT_DATE, $2, $3)
		RETURNING id`, partnerID, hour, value).Scan(&id)
	require.NoError(t, err)
	return id
}

func createBooking(t *testing.T, pool *pgxpool.Pool, userID, scheduleID int64, status string) int64 {
	var id int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO consumers.user_scheduling (user_id, partner_schedule_id, status)
		VALUES ($1, $2, $3)
		RETURNING id`, userID, scheduleID, status).Scan(&id)
	require.NoError(t, err)
	return id
}

func createPayment(t *testing.T, pool *pgxpool.Pool, userID, bookingID int64, amount float64, status string) {
	_, err := pool.Exec(t.Context(), `
		INSERT INTO consumers.payment (user_id, user_scheduling_id, amount_due, transferred_value, status)
		VALUES ($1, $2, $3, $4, $5)`, userID, bookingID, amount, amount*0.7, status)
	require.NoError(t, err)
}

func TestGetRevenuePerDayCountsOnlyPaid(t *testing.T) {
	h, pool := setupHandler(t)

	userID := createUser(t, pool, "payer@example.com", time.Now().UTC())
	partnerID := createPartner(t, pool, "Iron Temple Gym", "11111111000101")
	scheduleID := createSchedule(t, pool, partnerID, 9, 100)
	bookingID := createBooking(t, pool, userID, scheduleID, "COMPLETED")

	createPayment(t, pool, userID, bookingID, 100.50, "PAID")
	createPayment(t, pool, userID, bookingID, 60.00, "PENDING")
	createPayment(t, pool, userID, bookingID, 25.00, "REFUNDED")

	rr := get(t, h.GetRevenuePerDay, "/metrics/revenue-per-day")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeSeries(t, rr)
	require.Len(t, got.Values, 1)
	assert.Equal(t, []float64{100.50}, got.Values)
}

func TestGetDAUDistinctUsersInWindow(t *testing.T) {
	h, pool := setupHandler(t)

	u1 := createUser(t, pool, "a@example.com", time.Now().UTC())
	u2 := createUser(t, pool, "b@example.com", time.Now().UTC())

	for _, userID := range []int64{u1, u1, u2} {
		_, err := pool.Exec(t.Context(), `
			INSERT INTO consumers.user_time (user_id, type, created_at)
			VALUES ($1, 'APP_SESSION', now())`, userID)
		require.NoError(t, err)
	}
	// Outside the default 30-day window.
	_, err := pool.Exec(t.Context(), `
		INSERT INTO consumers.user_time (user_id, type, created_at)
		VALUES ($1, 'APP_SESSION', now() - interval '40 days')`, u1)
	require.NoError(t, err)

	rr := get(t, h.GetDAU, "/metrics/dau")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeSeries(t, rr)
	require.Len(t, got.Values, 1, "the 40-day-old session must not appear")
	assert.Equal(t, []float64{2}, got.Values, "repeat sessions count once per user")
}

func TestGetPartnerOccupancyOnlyBookedHours(t *testing.T) {
	h, pool := setupHandler(t)

	userID := createUser(t, pool, "booker@example.com", time.Now().UTC())
	partnerID := createPartner(t, pool, "Flow Yoga Studio", "22222222000102")
	nineAM := createSchedule(t, pool, partnerID, 9, 80)
	createSchedule(t, pool, partnerID, 17, 80) // no bookings

	for i := 0; i < 3; i++ {
		createBooking(t, pool, userID, nineAM, "COMPLETED")
	}

	rr := get(t, h.GetPartnerOccupancy, "/metrics/partner-occupancy?partnerId="+itoa(partnerID))
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeSeries(t, rr)
	assert.Equal(t, []string{"9:00"}, got.Labels, "empty slots do not appear")
	assert.Equal(t, []float64{3}, got.Values)
}

func TestGetRetentionCohorts(t *testing.T) {
	h, pool := setupHandler(t)

	// Two users registered exactly 7 days ago; one came back today.
	returning := createUser(t, pool, "returning@example.com", daysAgoNoon(t, pool, 7))
	createUser(t, pool, "churned@example.com", daysAgoNoon(t, pool, 7))

	_, err := pool.Exec(t.Context(), `
		INSERT INTO consumers.user_time (user_id, type, created_at)
		VALUES ($1, 'APP_SESSION', now())`, returning)
	require.NoError(t, err)

	rr := get(t, h.GetRetention, "/metrics/retention")
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		D1  map[string]float64 `json:"d1"`
		D7  map[string]float64 `json:"d7"`
		D30 map[string]float64 `json:"d30"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.Equal(t, float64(2), got.D7["total"])
	assert.Equal(t, float64(1), got.D7["retained"])
	assert.Equal(t, float64(50), got.D7["pct"])
	assert.Equal(t, float64(0), got.D1["total"])
	assert.Equal(t, float64(0), got.D1["pct"], "empty cohort reads as zero, not an error")
}

func TestGetAcquisitionFunnel(t *testing.T) {
	h, pool := setupHandler(t)

	events := []struct {
		session string
		event   string
	}{
		{"s1", "visited_site"}, {"s1", "started_signup"}, {"s1", "completed_signup"},
		{"s2", "visited_site"}, {"s2", "started_signup"},
		{"s3", "visited_site"},
	}
	for _, e := range events {
		_, err := pool.Exec(t.Context(), `
			INSERT INTO analytics.web_events (session_id, event_name, created_at)
			VALUES ($1, $2, now())`, e.session, e.event)
		require.NoError(t, err)
	}

	rr := get(t, h.GetAcquisitionFunnel, "/metrics/acquisition-funnel")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeSeries(t, rr)
	assert.Equal(t, []string{"visited", "started_signup", "completed_signup"}, got.Labels)
	assert.Equal(t, []float64{3, 2, 1}, got.Values)
}

func TestEmptyDatabaseReturnsZeroShapes(t *testing.T) {
	h, _ := setupHandler(t)

	rr := get(t, h.GetDAU, "/metrics/dau")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeSeries(t, rr)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Values)
	assert.Contains(t, rr.Body.String(), `"labels":[]`, "empty series must not be null")

	rr = get(t, h.GetKPIOverview, "/metrics/kpi-overview")
	require.Equal(t, http.StatusOK, rr.Code)
	sum := decodeSummary(t, rr)
	assert.Equal(t, float64(0), sum["total_users"])
	assert.Equal(t, float64(0), sum["total_revenue"])
	assert.Equal(t, float64(0), sum["total_partners"])
}

func TestRepeatRequestsAreIdentical(t *testing.T) {
	h, pool := setupHandler(t)

	userID := createUser(t, pool, "repeat@example.com", time.Now().UTC())
	_, err := pool.Exec(t.Context(), `
		INSERT INTO consumers.user_time (user_id, type, created_at)
		VALUES ($1, 'APP_SESSION', now())`, userID)
	require.NoError(t, err)

	first := get(t, h.GetActiveUsers, "/metrics/active-users")
	second := get(t, h.GetActiveUsers, "/metrics/active-users")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestInvalidParameters(t *testing.T) {
	h, _ := setupHandler(t)

	tests := []struct {
		name   string
		fn     http.HandlerFunc
		target string
		detail string
	}{
		{"non-numeric days", h.GetDAU, "/metrics/dau?days=abc", "days"},
		{"negative days", h.GetDAU, "/metrics/dau?days=-3", "days"},
		{"zero days", h.GetRevenuePerDay, "/metrics/revenue-per-day?days=0", "days"},
		{"missing partner id", h.GetPartnerStatus, "/metrics/partner-status", "partnerId"},
		{"non-numeric partner id", h.GetPartnerOccupancy, "/metrics/partner-occupancy?partnerId=x", "partnerId"},
		{"missing client id", h.GetB2BEngagement, "/metrics/b2b-engagement", "clientId"},
		{"bad grouping", h.GetNewUsers, "/metrics/new-users?groupBy=week", "groupBy"},
		{"active users bad days", h.GetActiveUsers, "/metrics/active-users?days=abc", "days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, tt.fn, tt.target)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Contains(t, body["detail"], tt.detail)
		})
	}
}

func TestGetLTVCAC(t *testing.T) {
	h, pool := setupHandler(t)

	recent := createUser(t, pool, "recent@example.com", daysAgoNoon(t, pool, 10))
	createUser(t, pool, "veteran@example.com", daysAgoNoon(t, pool, 40))

	partnerID := createPartner(t, pool, "Aqua Center", "88888888000108")
	scheduleID := createSchedule(t, pool, partnerID, 11, 100)
	bookingID := createBooking(t, pool, recent, scheduleID, "COMPLETED")
	createPayment(t, pool, recent, bookingID, 200, "PAID")

	createMarketingCost(t, pool, 5, "google_ads", 40)
	createMarketingCost(t, pool, 5, "meta_ads", 20)
	createMarketingCost(t, pool, 40, "google_ads", 999) // outside the window

	rr := get(t, h.GetLTVCAC, "/metrics/ltv-cac")
	require.Equal(t, http.StatusOK, rr.Code)

	sum := decodeSummary(t, rr)
	assert.Equal(t, 100.0, sum["ltv"], "settled revenue over every registered account")
	assert.Equal(t, 60.0, sum["cac_30d"], "windowed spend over windowed signups")
}

func TestGetMarketingSpend(t *testing.T) {
	h, pool := setupHandler(t)

	createMarketingCost(t, pool, 2, "google_ads", 10.25)
	createMarketingCost(t, pool, 2, "meta_ads", 5)
	createMarketingCost(t, pool, 1, "google_ads", 20)
	createMarketingCost(t, pool, 40, "google_ads", 99) // outside the window

	rr := get(t, h.GetMarketingSpend, "/metrics/marketing-spend")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeSeries(t, rr)
	require.Len(t, got.Labels, 2, "old spend must not appear")
	assert.Equal(t, []float64{15.25, 20}, got.Values, "sources sum per day, oldest first")
}

func TestGetB2BMEVDelta(t *testing.T) {
	h, pool := setupHandler(t)

	var clientID int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO companies.companies_client (company_name, cnpj)
		VALUES ('Cedar Finance', '99999999000109')
		RETURNING id`).Scan(&clientID)
	require.NoError(t, err)

	userID := createUser(t, pool, "collab@example.com", time.Now().UTC())
	_, err = pool.Exec(t.Context(), `
		INSERT INTO companies.companies_client_collaborator (client_id, user_id)
		VALUES ($1, $2)`, clientID, userID)
	require.NoError(t, err)

	scores := []struct {
		daysAgo int
		score   float64
	}{
		{60, 10}, // outside the window
		{20, 40},
		{1, 55},
	}
	for _, sc := range scores {
		_, err := pool.Exec(t.Context(), `
			INSERT INTO consumers.user_mev_score (user_id, score, calculated_at)
			VALUES ($1, $2, CURRENT_DATE - $3::int)`, userID, sc.score, sc.daysAgo)
		require.NoError(t, err)
	}

	rr := get(t, h.GetB2BMEVDelta, "/metrics/b2b-mev-delta?clientId="+itoa(clientID))
	require.Equal(t, http.StatusOK, rr.Code)

	sum := decodeSummary(t, rr)
	assert.Equal(t, 40.0, sum["old_score"], "oldest in-window score, not the 60-day one")
	assert.Equal(t, 55.0, sum["new_score"])
	assert.Equal(t, 15.0, sum["delta"])
}

func TestGetPartnerKPIs(t *testing.T) {
	h, pool := setupHandler(t)

	userID := createUser(t, pool, "kpi@example.com", time.Now().UTC())
	partnerID := createPartner(t, pool, "Peak Crossbox", "33333333000103")
	scheduleID := createSchedule(t, pool, partnerID, 10, 100)
	bookingID := createBooking(t, pool, userID, scheduleID, "COMPLETED")
	createPayment(t, pool, userID, bookingID, 100, "PAID")

	for _, rating := range []float64{8, 9} {
		_, err := pool.Exec(t.Context(), `
			INSERT INTO consumers.user_health_feedback (user_id, feedback_type, related_entity_id, rating)
			VALUES ($1, 'NPS_PARTNER', $2, $3)`, userID, partnerID, rating)
		require.NoError(t, err)
	}

	rr := get(t, h.GetPartnerKPIs, "/metrics/partner-kpis?partnerId="+itoa(partnerID))
	require.Equal(t, http.StatusOK, rr.Code)

	sum := decodeSummary(t, rr)
	assert.Equal(t, 8.5, sum["nps_avg"])
	assert.Equal(t, 70.0, sum["payout_30d"], "payout is the transferred value of settled payments")
}

func TestGetB2BEngagement(t *testing.T) {
	h, pool := setupHandler(t)

	var planID int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO companies.companies_plan (name, price) VALUES ('Growth', 129.90)
		RETURNING id`).Scan(&planID)
	require.NoError(t, err)

	var clientID int64
	err = pool.QueryRow(t.Context(), `
		INSERT INTO companies.companies_client (company_name, cnpj, plan_id)
		VALUES ('Acme Logistics', '44444444000104', $1)
		RETURNING id`, planID).Scan(&clientID)
	require.NoError(t, err)

	active := createUser(t, pool, "active@example.com", time.Now().UTC())
	idle := createUser(t, pool, "idle@example.com", time.Now().UTC())
	for _, userID := range []int64{active, idle} {
		_, err := pool.Exec(t.Context(), `
			INSERT INTO companies.companies_client_collaborator (client_id, user_id)
			VALUES ($1, $2)`, clientID, userID)
		require.NoError(t, err)
	}
	_, err = pool.Exec(t.Context(), `
		INSERT INTO consumers.user_time (user_id, type, created_at)
		VALUES ($1, 'APP_SESSION', now())`, active)
	require.NoError(t, err)

	rr := get(t, h.GetB2BEngagement, "/metrics/b2b-engagement?clientId="+itoa(clientID))
	require.Equal(t, http.StatusOK, rr.Code)

	sum := decodeSummary(t, rr)
	assert.Equal(t, float64(2), sum["total_collaborators"])
	assert.Equal(t, float64(1), sum["active_30d"])
	assert.Equal(t, float64(50), sum["adoption_pct"])
}

func TestGetUserGamificationSummary(t *testing.T) {
	h, pool := setupHandler(t)

	var rankID int64
	err := pool.QueryRow(t.Context(), `
		INSERT INTO consumers.rank (name, points) VALUES ('Gold', 1500)
		RETURNING id`).Scan(&rankID)
	require.NoError(t, err)

	userID := createUser(t, pool, "gamer@example.com", time.Now().UTC())
	_, err = pool.Exec(t.Context(), `
		UPDATE consumers."user" SET rank_id = $1 WHERE id = $2`, rankID, userID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := pool.Exec(t.Context(), `
			INSERT INTO consumers.user_health_stamp (user_id, name) VALUES ($1, 'Consistency')`, userID)
		require.NoError(t, err)
	}

	rr := get(t, h.GetUserGamificationSummary, "/metrics/user-gamification-summary?userId="+itoa(userID))
	require.Equal(t, http.StatusOK, rr.Code)

	sum := decodeSummary(t, rr)
	assert.Equal(t, float64(1500), sum["total_points"])
	assert.Equal(t, float64(2), sum["total_stamps"])
	assert.Equal(t, float64(0), sum["active_minutes_30d"])
	assert.Equal(t, float64(0), sum["calories_30d"])
}

func TestListPartners(t *testing.T) {
	h, pool := setupHandler(t)

	createPartner(t, pool, "Beta Gym", "55555555000105")
	createPartner(t, pool, "Alpha Gym", "66666666000106")
	_, err := pool.Exec(t.Context(), `
		INSERT INTO providers.partner (name, cnpj, active) VALUES ('Closed Gym', '77777777000107', false)`)
	require.NoError(t, err)

	rr := get(t, h.ListPartners, "/partners")
	require.Equal(t, http.StatusOK, rr.Code)

	var items []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.Len(t, items, 2, "inactive partners are excluded")
	assert.Equal(t, "Alpha Gym", items[0].Name)
	assert.Equal(t, "Beta Gym", items[1].Name)
}

func createMarketingCost(t *testing.T, pool *pgxpool.Pool, daysAgo int, source string, cost float64) {
	_, err := pool.Exec(t.Context(), `
		INSERT INTO analytics.marketing_costs (date, source, cost, clicks)
		VALUES (CURRENT_DATE - $1::int, $2, $3, 100)`, daysAgo, source, cost)
	require.NoError(t, err)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// daysAgoNoon returns noon (database time) exactly n days back, so the
// cohort date predicate is stable regardless of when the test runs.
func daysAgoNoon(t *testing.T, pool *pgxpool.Pool, n int) time.Time {
	var ts time.Time
	err := pool.QueryRow(t.Context(),
		`SELECT (CURRENT_DATE - $1::int)::timestamptz + interval '12 hours'`, n).Scan(&ts)
	require.NoError(t, err)
	return ts
}
