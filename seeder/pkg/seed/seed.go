package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// Config controls data volumes. Zero fields fall back to defaults.
type Config struct {
	Users    int
	Partners int
	Clients  int
	Facts    int
	// Seed fixes the random source for reproducible runs. Zero derives
	// it from the clock.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.Users == 0 {
		c.Users = 200
	}
	if c.Partners == 0 {
		c.Partners = 10
	}
	if c.Clients == 0 {
		c.Clients = 5
	}
	if c.Facts == 0 {
		c.Facts = 1000
	}
	return c
}

// Summary reports how many rows each stage produced.
type Summary struct {
	Users        int
	Partners     int
	Schedules    int
	Clients      int
	Bookings     int
	Payments     int
	Checkins     int
	WebSessions  int
	SkippedFacts int
}

// Seeder populates the operational schema with synthetic data. All
// timestamps derive from the injected clock and all randomness from a
// single seeded source, so runs are reproducible.
type Seeder struct {
	db    *pgxpool.Pool
	log   *slog.Logger
	clock clockwork.Clock
	rng   *rand.Rand
	cfg   Config

	userIDs     []int64
	partnerIDs  []int64
	scheduleIDs []int64
	// schedulePartner and scheduleValue are keyed by position in scheduleIDs.
	schedulePartner []int64
	scheduleValue   []float64
	clientIDs       []int64
	rankIDs         []int64
	missionIDs      []int64
	healthPointIDs  map[string]int64
}

// New constructs a Seeder. A zero cfg.Seed derives the random seed
// from the clock.
func New(db *pgxpool.Pool, log *slog.Logger, clock clockwork.Clock, cfg Config) *Seeder {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &Seeder{
		db:             db,
		log:            log,
		clock:          clock,
		rng:            rand.New(rand.NewSource(seed)),
		cfg:            cfg,
		healthPointIDs: map[string]int64{},
	}
}

// Run populates every table in dependency order and returns row
// counts. Individual fact rows that violate a constraint are rolled
// back and skipped; the run continues.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	stages := []struct {
		name string
		fn   func(context.Context, *Summary) error
	}{
		{"catalogs", s.seedCatalogs},
		{"users", s.seedUsers},
		{"retention cohorts", s.seedRetentionCohorts},
		{"partners", s.seedPartners},
		{"companies", s.seedCompanies},
		{"facts", s.seedFacts},
		{"activity background", s.seedActivityBackground},
		{"wellness scores", s.seedMEVScores},
		{"web events", s.seedWebEvents},
		{"marketing costs", s.seedMarketingCosts},
	}
	for _, stage := range stages {
		s.log.Info("seeding", "stage", stage.name)
		if err := stage.fn(ctx, &sum); err != nil {
			return sum, fmt.Errorf("stage %s failed: %w", stage.name, err)
		}
	}
	return sum, nil
}

func (s *Seeder) seedCatalogs(ctx context.Context, _ *Summary) error {
	for _, r := range rankCatalog {
		var id int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO consumers.rank (name, points) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET points = EXCLUDED.points
			RETURNING id`, r.Name, r.Points).Scan(&id)
		if err != nil {
			return err
		}
		s.rankIDs = append(s.rankIDs, id)
	}

	for _, name := range healthPointCatalog {
		var id int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO consumers.health_point (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name).Scan(&id)
		if err != nil {
			return err
		}
		s.healthPointIDs[name] = id
	}

	for _, m := range missionCatalog {
		var id int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO consumers.missions (name, description, points) VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET points = EXCLUDED.points
			RETURNING id`, m.Name, m.Description, m.Points).Scan(&id)
		if err != nil {
			return err
		}
		s.missionIDs = append(s.missionIDs, id)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, sum *Summary) error {
	for i := 0; i < s.cfg.Users; i++ {
		name := s.personName()
		email := fmt.Sprintf("%s.%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i)
		createdAt := s.pastTime(90)
		var id int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO consumers."user" (name, email, zip_code, active, rank_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			name, email, s.zipCode(), s.rng.Float64() < 0.92, s.pick(s.rankIDs), createdAt).Scan(&id)
		if err != nil {
			return err
		}
		s.userIDs = append(s.userIDs, id)
		sum.Users++
	}
	return nil
}

// seedRetentionCohorts plants users registered exactly 1, 7 and 30
// days ago, a portion of them with activity today, so the retention
// report always has cohorts to measure.
func (s *Seeder) seedRetentionCohorts(ctx context.Context, sum *Summary) error {
	today := s.today()
	for _, daysBack := range []int{1, 7, 30} {
		registered := today.AddDate(0, 0, -daysBack).Add(10 * time.Hour)
		for i := 0; i < 6; i++ {
			name := s.personName()
			email := fmt.Sprintf("cohort%d.%d.%s@example.com", daysBack, i, uuid.NewString()[:8])
			var id int64
			err := s.db.QueryRow(ctx, `
				INSERT INTO consumers."user" (name, email, zip_code, created_at)
				VALUES ($1, $2, $3, $4)
				RETURNING id`, name, email, s.zipCode(), registered).Scan(&id)
			if err != nil {
				return err
			}
			s.userIDs = append(s.userIDs, id)
			sum.Users++

			// Half of each cohort comes back today.
			if i%2 == 0 {
				_, err := s.db.Exec(ctx, `
					INSERT INTO consumers.user_time (user_id, type, created_at)
					VALUES ($1, 'APP_SESSION', $2)`, id, today.Add(9*time.Hour))
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedPartners(ctx context.Context, sum *Summary) error {
	for i := 0; i < s.cfg.Partners; i++ {
		name := partnerNames[i%len(partnerNames)]
		if i >= len(partnerNames) {
			name = fmt.Sprintf("%s %d", name, i/len(partnerNames)+1)
		}
		var partnerID int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO providers.partner (name, cnpj, active, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, name, s.cnpj(), s.rng.Float64() < 0.9, s.pastTime(180)).Scan(&partnerID)
		if err != nil {
			return err
		}
		s.partnerIDs = append(s.partnerIDs, partnerID)
		sum.Partners++

		var activityIDs []int64
		for j := 0; j < 1+s.rng.Intn(3); j++ {
			var activityID int64
			err := s.db.QueryRow(ctx, `
				INSERT INTO providers.partner_activity (partner_id, name)
				VALUES ($1, $2)
				RETURNING id`, partnerID, s.pickString(activityNames)).Scan(&activityID)
			if err != nil {
				return err
			}
			activityIDs = append(activityIDs, activityID)
		}

		// Slots across the window: a handful of hours per day.
		for dayOffset := -35; dayOffset <= 7; dayOffset++ {
			date := s.today().AddDate(0, 0, dayOffset)
			for _, hour := range s.slotHours() {
				value := 40 + s.rng.Float64()*80
				var scheduleID int64
				err := s.db.QueryRow(ctx, `
					INSERT INTO providers.partner_schedule (partner_id, activity_id, date, hour, value)
					VALUES ($1, $2, $3, $4, $5)
					RETURNING id`, partnerID, s.pick(activityIDs), date, hour, value).Scan(&scheduleID)
				if err != nil {
					return err
				}
				s.scheduleIDs = append(s.scheduleIDs, scheduleID)
				s.schedulePartner = append(s.schedulePartner, partnerID)
				s.scheduleValue = append(s.scheduleValue, value)
				sum.Schedules++
			}
		}
	}
	return nil
}

func (s *Seeder) seedCompanies(ctx context.Context, sum *Summary) error {
	planIDs := make([]int64, 0, len(planCatalog))
	for _, p := range planCatalog {
		var id int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO companies.companies_plan (name, price) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price
			RETURNING id`, p.Name, p.Price).Scan(&id)
		if err != nil {
			return err
		}
		planIDs = append(planIDs, id)
	}

	for i := 0; i < s.cfg.Clients; i++ {
		name := companyNames[i%len(companyNames)]
		if i >= len(companyNames) {
			name = fmt.Sprintf("%s %d", name, i/len(companyNames)+1)
		}
		var clientID int64
		err := s.db.QueryRow(ctx, `
			INSERT INTO companies.companies_client (company_name, cnpj, plan_id, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, name, s.cnpj(), s.pick(planIDs), s.pastTime(365)).Scan(&clientID)
		if err != nil {
			return err
		}
		s.clientIDs = append(s.clientIDs, clientID)
		sum.Clients++

		// Enroll a random slice of the consumer base.
		count := 10 + s.rng.Intn(20)
		for j := 0; j < count; j++ {
			_, err := s.db.Exec(ctx, `
				INSERT INTO companies.companies_client_collaborator (client_id, user_id)
				VALUES ($1, $2)
				ON CONFLICT (client_id, user_id) DO NOTHING`, clientID, s.pick(s.userIDs))
			if err != nil {
				return err
			}
		}

		for j := 0; j < s.rng.Intn(3); j++ {
			starts := s.today().AddDate(0, 0, -s.rng.Intn(60))
			var campaignID int64
			err := s.db.QueryRow(ctx, `
				INSERT INTO companies.campaigns (client_id, name, starts_at, ends_at)
				VALUES ($1, $2, $3, $4)
				RETURNING id`, clientID, fmt.Sprintf("%s Wellness Challenge %d", name, j+1),
				starts, starts.AddDate(0, 0, 30)).Scan(&campaignID)
			if err != nil {
				return err
			}
			for k := 0; k < 5+s.rng.Intn(10); k++ {
				_, err := s.db.Exec(ctx, `
					INSERT INTO companies.user_campaign_participation (campaign_id, user_id)
					VALUES ($1, $2)
					ON CONFLICT (campaign_id, user_id) DO NOTHING`, campaignID, s.pick(s.userIDs))
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// seedFacts generates the booking/payment/check-in chains. Each fact
// runs in its own transaction; a constraint violation rolls back that
// fact only and the run continues.
func (s *Seeder) seedFacts(ctx context.Context, sum *Summary) error {
	for i := 0; i < s.cfg.Facts; i++ {
		if err := s.seedOneFact(ctx, sum); err != nil {
			s.log.Debug("skipping fact", "error", err)
			sum.SkippedFacts++
		}
	}
	return nil
}

func (s *Seeder) seedOneFact(ctx context.Context, sum *Summary) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID := s.pick(s.userIDs)
	slot := s.rng.Intn(len(s.scheduleIDs))
	scheduleID := s.scheduleIDs[slot]
	partnerID := s.schedulePartner[slot]
	amount := s.scheduleValue[slot]
	bookedAt := s.pastTime(30)
	status := s.bookingStatus()

	var bookingID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO consumers.user_scheduling (user_id, partner_schedule_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, userID, scheduleID, status, bookedAt).Scan(&bookingID)
	if err != nil {
		return err
	}
	sum.Bookings++

	if status == "COMPLETED" || status == "CONFIRMED" {
		payStatus := "PAID"
		r := s.rng.Float64()
		switch {
		case r < 0.08:
			payStatus = "PENDING"
		case r < 0.12:
			payStatus = "REFUNDED"
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO consumers.payment (user_id, user_scheduling_id, amount_due, transferred_value, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, bookingID, amount, amount*0.7, payStatus, bookedAt.Add(time.Minute))
		if err != nil {
			return err
		}
		sum.Payments++
	}

	if status == "COMPLETED" {
		start := bookedAt.Add(time.Duration(1+s.rng.Intn(48)) * time.Hour)
		if start.After(s.clock.Now()) {
			start = bookedAt
		}
		finished := start.Add(time.Duration(30+s.rng.Intn(61)) * time.Minute)
		_, err = tx.Exec(ctx, `
			INSERT INTO consumers.user_time (user_id, partner_id, type, created_at, finished_at)
			VALUES ($1, $2, 'CHECKIN', $3, $4)`, userID, partnerID, start, finished)
		if err != nil {
			return err
		}
		sum.Checkins++

		if s.rng.Float64() < 0.3 {
			_, err = tx.Exec(ctx, `
				INSERT INTO consumers.user_health_feedback (user_id, feedback_type, related_entity_id, rating, created_at)
				VALUES ($1, 'NPS_PARTNER', $2, $3, $4)`,
				userID, partnerID, float64(4+s.rng.Intn(7)), finished)
			if err != nil {
				return err
			}
		}
		if s.rng.Float64() < 0.4 {
			_, err = tx.Exec(ctx, `
				INSERT INTO consumers.user_health_point (user_id, health_point_id, value, recorded_at)
				VALUES ($1, $2, $3, $4)`,
				userID, s.healthPointIDs["Calories Burned"], 150+s.rng.Float64()*500, finished)
			if err != nil {
				return err
			}
		}
		if s.rng.Float64() < 0.1 {
			_, err = tx.Exec(ctx, `
				INSERT INTO consumers.user_health_stamp (user_id, name, earned_at)
				VALUES ($1, $2, $3)`, userID, s.pickString(stampNames), finished)
			if err != nil {
				return err
			}
		}
		if s.rng.Float64() < 0.15 {
			_, err = tx.Exec(ctx, `
				INSERT INTO consumers.user_missions (user_id, mission_id, completed_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id, mission_id) DO NOTHING`, userID, s.pick(s.missionIDs), finished)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// seedActivityBackground spreads lightweight app sessions across the
// window so daily-active metrics have signal beyond check-ins.
func (s *Seeder) seedActivityBackground(ctx context.Context, _ *Summary) error {
	for _, userID := range s.userIDs {
		days := s.rng.Intn(8)
		for i := 0; i < days; i++ {
			_, err := s.db.Exec(ctx, `
				INSERT INTO consumers.user_time (user_id, type, created_at)
				VALUES ($1, 'APP_SESSION', $2)`, userID, s.pastTime(30))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// seedMEVScores writes two wellness scores per enrolled collaborator:
// one at the edge of the window and one recent, trending upward.
func (s *Seeder) seedMEVScores(ctx context.Context, _ *Summary) error {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT user_id FROM companies.companies_client_collaborator`)
	if err != nil {
		return err
	}
	collaboratorIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return err
	}

	for _, userID := range collaboratorIDs {
		base := 40 + s.rng.Float64()*30
		improvement := -5 + s.rng.Float64()*25
		batch := []struct {
			score float64
			date  time.Time
		}{
			{base, s.today().AddDate(0, 0, -30)},
			{base + improvement, s.today().AddDate(0, 0, -s.rng.Intn(5))},
		}
		for _, b := range batch {
			_, err := s.db.Exec(ctx, `
				INSERT INTO consumers.user_mev_score (user_id, score, calculated_at)
				VALUES ($1, $2, $3)`, userID, b.score, b.date)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedWebEvents(ctx context.Context, sum *Summary) error {
	sessions := s.cfg.Facts * 2
	for i := 0; i < sessions; i++ {
		sessionID := uuid.NewString()
		at := s.pastTime(30)
		if _, err := s.db.Exec(ctx, `
			INSERT INTO analytics.web_events (session_id, event_name, created_at)
			VALUES ($1, 'visited_site', $2)`, sessionID, at); err != nil {
			return err
		}
		sum.WebSessions++

		if s.rng.Float64() < 0.4 {
			if _, err := s.db.Exec(ctx, `
				INSERT INTO analytics.web_events (session_id, event_name, created_at)
				VALUES ($1, 'started_signup', $2)`, sessionID, at.Add(2*time.Minute)); err != nil {
				return err
			}
			if s.rng.Float64() < 0.5 {
				// Completed signups belong to an account; earlier
				// stages stay anonymous.
				if _, err := s.db.Exec(ctx, `
					INSERT INTO analytics.web_events (session_id, event_name, user_id, created_at)
					VALUES ($1, 'completed_signup', $2, $3)`, sessionID, s.pick(s.userIDs), at.Add(5*time.Minute)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedMarketingCosts(ctx context.Context, _ *Summary) error {
	for dayOffset := 0; dayOffset <= 35; dayOffset++ {
		date := s.today().AddDate(0, 0, -dayOffset)
		for _, source := range marketingSources {
			_, err := s.db.Exec(ctx, `
				INSERT INTO analytics.marketing_costs (date, source, cost, clicks)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (date, source) DO UPDATE
				SET cost = EXCLUDED.cost, clicks = EXCLUDED.clicks`,
				date, source, 50+s.rng.Float64()*450, 20+s.rng.Intn(980))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) personName() string {
	return s.pickString(firstNames) + " " + s.pickString(lastNames)
}

func (s *Seeder) zipCode() string {
	return fmt.Sprintf("%05d", s.rng.Intn(100000))
}

func (s *Seeder) cnpj() string {
	return fmt.Sprintf("%014d", s.rng.Int63n(100000000000000))
}

func (s *Seeder) bookingStatus() string {
	r := s.rng.Float64()
	switch {
	case r < 0.6:
		return "COMPLETED"
	case r < 0.8:
		return "CONFIRMED"
	case r < 0.95:
		return "CANCELLED"
	default:
		return "NO_SHOW"
	}
}

func (s *Seeder) slotHours() []int {
	hours := []int{6, 7, 8, 9, 10, 11, 12, 15, 16, 17, 18, 19, 20, 21}
	s.rng.Shuffle(len(hours), func(i, j int) { hours[i], hours[j] = hours[j], hours[i] })
	n := 4 + s.rng.Intn(4)
	picked := append([]int(nil), hours[:n]...)
	return picked
}

func (s *Seeder) today() time.Time {
	now := s.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// pastTime returns a random instant inside the trailing window of
// maxDays days, never in the future.
func (s *Seeder) pastTime(maxDays int) time.Time {
	offset := time.Duration(s.rng.Int63n(int64(maxDays) * int64(24*time.Hour)))
	return s.clock.Now().UTC().Add(-offset)
}

func (s *Seeder) pick(ids []int64) int64 {
	return ids[s.rng.Intn(len(ids))]
}

func (s *Seeder) pickString(items []string) string {
	return items[s.rng.Intn(len(items))]
}
