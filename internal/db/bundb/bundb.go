package bundb

import (
	"context"
	"database/sql"
	"fmt"

	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewDB opens a Postgres-backed bun.DB and verifies connectivity.
func NewDB(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&activitydb.Activity{})
	db.RegisterModel(&activitydb.Participant{})
	db.RegisterModel(&activitydb.ContributionHeader{})
	db.RegisterModel(&activitydb.DetailRecord{})
	db.RegisterModel(&activitydb.Media{})
	db.RegisterModel(&activitydb.FeedSummary{})

	return db, nil
}
