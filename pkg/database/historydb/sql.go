// Zaparoo Ample
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Ample.
//
// Zaparoo Ample is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Ample is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Ample.  If not, see <http://www.gnu.org/licenses/>.

package historydb

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-ample/pkg/database"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func sqlMigrateUp(db *sql.DB) error {
	if err := database.MigrateUp(db, migrationFiles, "migrations"); err != nil {
		return fmt.Errorf("failed to run history database migrations: %w", err)
	}
	return nil
}

func sqlVacuum(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `vacuum;`)
	if err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

func prepareLaunch(entry *database.LaunchEntry, clock clockwork.Clock) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Time.IsZero() {
		entry.Time = clock.Now()
	}
	if entry.Args == nil {
		entry.Args = []string{}
	}
}

func sqlAddLaunch(ctx context.Context, db *sql.DB, entry *database.LaunchEntry) error {
	args, err := json.Marshal(entry.Args)
	if err != nil {
		return fmt.Errorf("failed to encode launch arguments: %w", err)
	}

	stmt, err := db.PrepareContext(ctx, `
		insert into Launches(
			ID, Time, Machine, Software, Args
		) values (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare launch insert statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	result, err := stmt.ExecContext(ctx,
		entry.ID,
		entry.Time.Unix(),
		entry.Machine,
		entry.Software,
		string(args),
	)
	if err != nil {
		return fmt.Errorf("failed to execute launch insert: %w", err)
	}

	dbid, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	entry.DBID = dbid
	return nil
}

func sqlRecentLaunches(ctx context.Context, db *sql.DB, limit int) ([]database.LaunchEntry, error) {
	list := make([]database.LaunchEntry, 0, limit)

	q, err := db.PrepareContext(ctx, `
		select
		DBID, ID, Time, Machine, Software, Args
		from Launches
		order by Time desc, DBID desc
		limit ?;
	`)
	if err != nil {
		return list, fmt.Errorf("failed to prepare launch query statement: %w", err)
	}
	defer func() {
		if closeErr := q.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	rows, err := q.QueryContext(ctx, limit)
	if err != nil {
		return list, fmt.Errorf("failed to query launches: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql rows")
		}
	}()

	for rows.Next() {
		row := database.LaunchEntry{}
		var timeInt int64
		var args string
		scanErr := rows.Scan(
			&row.DBID,
			&row.ID,
			&timeInt,
			&row.Machine,
			&row.Software,
			&args,
		)
		if scanErr != nil {
			return list, fmt.Errorf("failed to scan launch row: %w", scanErr)
		}
		row.Time = time.Unix(timeInt, 0)
		if err := json.Unmarshal([]byte(args), &row.Args); err != nil {
			log.Warn().Err(err).Str("id", row.ID).Msg("invalid launch arguments in history")
			row.Args = []string{}
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return list, fmt.Errorf("error iterating launch rows: %w", err)
	}
	return list, nil
}

func sqlCleanupHistory(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	stmt, err := db.PrepareContext(ctx, `delete from Launches where Time < ?;`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare history cleanup statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	result, err := stmt.ExecContext(ctx, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to execute history cleanup: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		if err := sqlVacuum(ctx, db); err != nil {
			return rowsAffected, fmt.Errorf("cleanup succeeded but vacuum failed: %w", err)
		}
	}

	return rowsAffected, nil
}
