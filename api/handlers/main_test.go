package handlers_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	apitesting "github.com/vitalabs/pulse/api/testing"
)

var testDB *apitesting.PostgresDB

func TestMain(m *testing.M) {
	ctx := context.Background()
	log := slog.Default()

	var err error
	testDB, err = apitesting.NewPostgresDB(ctx, log, nil)
	if err != nil {
		slog.Error("failed to start Postgres container", "error", err)
		os.Exit(1)
	}

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}

	os.Exit(code)
}
