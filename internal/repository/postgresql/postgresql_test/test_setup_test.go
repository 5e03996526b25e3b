package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, which must already carry the
// migrations. Tests are skipped when it is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		truncate(t, db)
		db.Close()
	})
	truncate(t, db)
	return db
}

// truncate clears the data tables while keeping the seeded permissions,
// groups and settings.
func truncate(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"salary_reports",
		"attendances",
		"employees",
		"departments",
		"official_holidays",
		"refresh_tokens",
		"users",
	}
	for _, table := range tables {
		_, err := db.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}
