package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// verifyCheck is one row-count assertion against the seeded database.
// A check with an empty Where counts the whole table; column checks
// count rows matching the predicate.
type verifyCheck struct {
	Table   string
	Where   string
	MinRows int64
}

func (c verifyCheck) name() string {
	if c.Where == "" {
		return c.Table
	}
	return c.Table + " (" + c.Where + ")"
}

// verifiedChecks lists every table the seeder populates, with the
// minimum row count a healthy run must produce, plus column-level
// checks on fields the metrics depend on being populated.
var verifiedChecks = []verifyCheck{
	{Table: `consumers.rank`, MinRows: 4},
	{Table: `consumers."user"`, MinRows: 1},
	{Table: `consumers.user_time`, MinRows: 1},
	{Table: `consumers.user_time`, Where: `finished_at IS NOT NULL`, MinRows: 1},
	{Table: `consumers.user_scheduling`, MinRows: 1},
	{Table: `consumers.payment`, MinRows: 1},
	{Table: `consumers.payment`, Where: `transferred_value IS NOT NULL`, MinRows: 1},
	{Table: `consumers.health_point`, MinRows: 3},
	{Table: `consumers.user_health_point`, MinRows: 0},
	{Table: `consumers.user_health_feedback`, MinRows: 0},
	{Table: `consumers.user_health_stamp`, MinRows: 0},
	{Table: `consumers.missions`, MinRows: 8},
	{Table: `consumers.user_missions`, MinRows: 0},
	{Table: `consumers.user_mev_score`, MinRows: 1},
	{Table: `providers.partner`, MinRows: 1},
	{Table: `providers.partner_activity`, MinRows: 1},
	{Table: `providers.partner_schedule`, MinRows: 1},
	{Table: `companies.companies_plan`, MinRows: 3},
	{Table: `companies.companies_client`, MinRows: 1},
	{Table: `companies.companies_client_collaborator`, MinRows: 1},
	{Table: `companies.campaigns`, MinRows: 0},
	{Table: `companies.user_campaign_participation`, MinRows: 0},
	{Table: `analytics.web_events`, MinRows: 1},
	{Table: `analytics.marketing_costs`, MinRows: 1},
}

// Verify runs every check in parallel and fails if any count is below
// its expected minimum. It logs a per-check report sorted by name.
func Verify(ctx context.Context, db *pgxpool.Pool, log *slog.Logger) error {
	var mu sync.Mutex
	counts := make(map[string]int64, len(verifiedChecks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, vc := range verifiedChecks {
		g.Go(func() error {
			query := `SELECT COUNT(*) FROM ` + vc.Table
			if vc.Where != "" {
				query += ` WHERE ` + vc.Where
			}
			var n int64
			if err := db.QueryRow(ctx, query).Scan(&n); err != nil {
				return fmt.Errorf("failed to count %s: %w", vc.name(), err)
			}
			mu.Lock()
			counts[vc.name()] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Info("check verified", "check", name, "rows", counts[name])
	}

	var failures []string
	for _, vc := range verifiedChecks {
		if counts[vc.name()] < vc.MinRows {
			failures = append(failures, fmt.Sprintf("%s has %d rows, want at least %d", vc.name(), counts[vc.name()], vc.MinRows))
		}
	}
	if len(failures) > 0 {
		for _, f := range failures {
			log.Error("verification failed", "check", f)
		}
		return fmt.Errorf("verification failed for %d checks", len(failures))
	}

	log.Info("all checks verified", "checks", len(verifiedChecks))
	return nil
}
