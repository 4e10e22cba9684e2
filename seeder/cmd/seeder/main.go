package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	flag "github.com/spf13/pflag"

	"github.com/vitalabs/pulse/api/config"
	"github.com/vitalabs/pulse/seeder/pkg/postgres"
	"github.com/vitalabs/pulse/seeder/pkg/seed"
	"github.com/vitalabs/pulse/utils/pkg/logger"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	verboseFlag := flag.Bool("verbose", false, "enable verbose (debug) logging")
	databaseURLFlag := flag.String("database-url", "", "Postgres connection string (or set DATABASE_URL env var)")
	migrationsEnableFlag := flag.Bool("migrations-enable", true, "run schema migrations before seeding")
	migrationsStatusFlag := flag.Bool("migrations-status", false, "print migration status and exit")
	verifyFlag := flag.Bool("verify", false, "verify seeded row counts instead of seeding")
	usersFlag := flag.Int("users", 200, "number of consumer accounts to create")
	partnersFlag := flag.Int("partners", 10, "number of partners to create")
	clientsFlag := flag.Int("clients", 5, "number of corporate clients to create")
	factsFlag := flag.Int("facts", 1000, "number of booking/payment/check-in chains to create")
	seedFlag := flag.Int64("seed", 0, "random seed for reproducible runs (0 = time-based)")
	flag.Parse()

	// Load .env file. godotenv does not override existing env vars, so
	// process env and explicit exports take precedence.
	_ = godotenv.Load()

	if envDatabaseURL := os.Getenv("DATABASE_URL"); envDatabaseURL != "" && *databaseURLFlag == "" {
		*databaseURLFlag = envDatabaseURL
	}

	log := logger.New(*verboseFlag)
	log.Info("starting pulse-seeder", "version", version, "commit", commit, "date", date)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if *databaseURLFlag != "" {
		cfg.DatabaseURL = *databaseURLFlag
	}

	if *migrationsStatusFlag {
		return postgres.MigrationStatus(ctx, log, postgres.MigrationConfig{DSN: cfg.DatabaseURL})
	}

	if *migrationsEnableFlag {
		err := postgres.RunMigrations(ctx, log, postgres.MigrationConfig{DSN: cfg.DatabaseURL})
		if err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	pool, err := config.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	if *verifyFlag {
		return seed.Verify(ctx, pool, log)
	}

	seeder := seed.New(pool, log, clockwork.NewRealClock(), seed.Config{
		Users:    *usersFlag,
		Partners: *partnersFlag,
		Clients:  *clientsFlag,
		Facts:    *factsFlag,
		Seed:     *seedFlag,
	})
	sum, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("seeding complete",
		"users", sum.Users,
		"partners", sum.Partners,
		"schedules", sum.Schedules,
		"clients", sum.Clients,
		"bookings", sum.Bookings,
		"payments", sum.Payments,
		"checkins", sum.Checkins,
		"web_sessions", sum.WebSessions,
		"skipped_facts", sum.SkippedFacts,
	)
	return nil
}
