package activitymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating activity tables...")

		// Cascade deletes and the two uniqueness constraints are mandatory
		// for correctness, not just performance: one participant row per
		// (activity, account) and one detail record per (header, ordinal).
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS activities (
				id UUID PRIMARY KEY,
				created_by UUID NOT NULL,
				activity_type TEXT NOT NULL,
				title TEXT NOT NULL,
				description TEXT,
				date TIMESTAMPTZ NOT NULL,
				location TEXT,
				visibility TEXT NOT NULL,
				status TEXT NOT NULL,
				summary_ref UUID,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS participants (
				id UUID PRIMARY KEY,
				activity_id UUID NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
				account_id UUID NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				responded_at TIMESTAMPTZ,
				role TEXT NOT NULL DEFAULT 'participant',
				has_contributed BOOLEAN NOT NULL DEFAULT FALSE,
				last_contribution_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE(activity_id, account_id)
			);

			CREATE TABLE IF NOT EXISTS contribution_headers (
				id UUID PRIMARY KEY,
				participant_id UUID NOT NULL UNIQUE REFERENCES participants(id) ON DELETE CASCADE,
				entered_by UUID NOT NULL,
				confirmed BOOLEAN NOT NULL DEFAULT FALSE,
				total INTEGER NOT NULL DEFAULT 0,
				units_completed INTEGER NOT NULL DEFAULT 0,
				delta INTEGER,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS detail_records (
				id UUID PRIMARY KEY,
				header_id UUID NOT NULL REFERENCES contribution_headers(id) ON DELETE CASCADE,
				ordinal INTEGER NOT NULL,
				primary_count INTEGER NOT NULL CHECK (primary_count > 0),
				secondary_count INTEGER CHECK (secondary_count IS NULL OR secondary_count <= primary_count),
				flag BOOLEAN NOT NULL DEFAULT FALSE,
				entered_by UUID NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE(header_id, ordinal)
			);

			CREATE TABLE IF NOT EXISTS activity_media (
				id UUID PRIMARY KEY,
				activity_id UUID NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
				url TEXT NOT NULL,
				media_type TEXT NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS feed_summaries (
				activity_id UUID PRIMARY KEY REFERENCES activities(id) ON DELETE CASCADE,
				summary_ref UUID NOT NULL UNIQUE,
				snapshot JSONB NOT NULL,
				published_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_participants_activity ON participants(activity_id);
			CREATE INDEX IF NOT EXISTS idx_participants_account ON participants(account_id);
			CREATE INDEX IF NOT EXISTS idx_detail_records_header ON detail_records(header_id);
			CREATE INDEX IF NOT EXISTS idx_activity_media_activity ON activity_media(activity_id);
		`)
		if err != nil {
			return fmt.Errorf("failed to create activity tables: %w", err)
		}

		fmt.Println("Activity tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping activity tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS feed_summaries;
			DROP TABLE IF EXISTS activity_media;
			DROP TABLE IF EXISTS detail_records;
			DROP TABLE IF EXISTS contribution_headers;
			DROP TABLE IF EXISTS participants;
			DROP TABLE IF EXISTS activities;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop activity tables: %w", err)
		}

		fmt.Println("Activity tables dropped successfully!")
		return nil
	})
}
