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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-ample/pkg/config"
	"github.com/ZaparooProject/zaparoo-ample/pkg/database"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNullSQL = errors.New("HistoryDB is not connected")

const sqliteConnParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

// DefaultRecentLimit is used when RecentLaunches is asked for a
// non-positive number of rows.
const DefaultRecentLimit = 25

type HistoryDB struct {
	sql     *sql.DB
	ctx     context.Context
	clock   clockwork.Clock
	dataDir string
}

var _ database.HistoryDBI = (*HistoryDB)(nil)

// OpenHistoryDB opens, creating if needed, the launch history database in
// dataDir and brings its schema up to date.
func OpenHistoryDB(ctx context.Context, dataDir string) (*HistoryDB, error) {
	db := &HistoryDB{
		ctx:     ctx,
		clock:   clockwork.NewRealClock(),
		dataDir: dataDir,
	}
	err := db.Open()
	return db, err
}

func (db *HistoryDB) Open() error {
	dbPath := db.GetDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for database: %w", err)
	}
	sqlInstance, err := sql.Open("sqlite3", dbPath+sqliteConnParams)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.sql = sqlInstance
	if err := db.MigrateUp(); err != nil {
		_ = sqlInstance.Close()
		db.sql = nil
		return err
	}
	return nil
}

func (db *HistoryDB) GetDBPath() string {
	return filepath.Join(db.dataDir, config.HistoryDbFile)
}

// SetClock replaces the clock used to timestamp launches and compute
// retention cutoffs.
func (db *HistoryDB) SetClock(clock clockwork.Clock) {
	db.clock = clock
}

func (db *HistoryDB) MigrateUp() error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlMigrateUp(db.sql)
}

func (db *HistoryDB) Vacuum() error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlVacuum(db.ctx, db.sql)
}

// AddLaunch records a launch. A missing ID or time is filled in, and the
// stored row ID is written back to entry.
func (db *HistoryDB) AddLaunch(entry *database.LaunchEntry) error {
	if db.sql == nil {
		return ErrNullSQL
	}
	prepareLaunch(entry, db.clock)
	return sqlAddLaunch(db.ctx, db.sql, entry)
}

// RecentLaunches returns up to limit launches, newest first.
func (db *HistoryDB) RecentLaunches(limit int) ([]database.LaunchEntry, error) {
	if db.sql == nil {
		return nil, ErrNullSQL
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return sqlRecentLaunches(db.ctx, db.sql, limit)
}

// CleanupHistory deletes launches older than retentionDays. Zero or a
// negative value keeps everything.
func (db *HistoryDB) CleanupHistory(retentionDays int) (int64, error) {
	if db.sql == nil {
		return 0, ErrNullSQL
	}
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := db.clock.Now().AddDate(0, 0, -retentionDays)
	return sqlCleanupHistory(db.ctx, db.sql, cutoff)
}

func (db *HistoryDB) Close() error {
	if db.sql == nil {
		return nil
	}
	err := db.sql.Close()
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// SetSQLForTesting allows injection of a sql.DB instance for testing purposes.
// The schema is not migrated so sqlmock connections can be used directly.
func (db *HistoryDB) SetSQLForTesting(ctx context.Context, sqlDB *sql.DB, clock clockwork.Clock) {
	db.sql = sqlDB
	db.ctx = ctx
	db.clock = clock
}
