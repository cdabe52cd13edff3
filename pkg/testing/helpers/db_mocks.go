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

// Package helpers provides test doubles and fixtures shared across packages.
//
// Database interfaces are mocked with testify/mock:
//
//	history := helpers.NewMockHistoryDBI()
//	history.On("AddLaunch", helpers.LaunchEntryMatcher()).Return(nil)
//	err := MyFunction(history)
//	require.NoError(t, err)
//	history.AssertExpectations(t)
package helpers

import (
	"fmt"

	"github.com/ZaparooProject/zaparoo-ample/pkg/database"
	"github.com/stretchr/testify/mock"
)

// MockHistoryDBI is a mock implementation of database.HistoryDBI.
type MockHistoryDBI struct {
	mock.Mock
}

var _ database.HistoryDBI = (*MockHistoryDBI)(nil)

// NewMockHistoryDBI returns a mock with a permissive GetDBPath and Close.
func NewMockHistoryDBI() *MockHistoryDBI {
	m := &MockHistoryDBI{}
	m.On("GetDBPath").Return("/tmp/history.db").Maybe()
	m.On("Close").Return(nil).Maybe()
	return m
}

func (m *MockHistoryDBI) AddLaunch(entry *database.LaunchEntry) error {
	args := m.Called(entry)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock HistoryDBI add launch failed: %w", err)
	}
	return nil
}

func (m *MockHistoryDBI) RecentLaunches(limit int) ([]database.LaunchEntry, error) {
	args := m.Called(limit)
	entries, _ := args.Get(0).([]database.LaunchEntry)
	if err := args.Error(1); err != nil {
		return entries, fmt.Errorf("mock HistoryDBI recent launches failed: %w", err)
	}
	return entries, nil
}

func (m *MockHistoryDBI) CleanupHistory(retentionDays int) (int64, error) {
	args := m.Called(retentionDays)
	n, _ := args.Get(0).(int64)
	if err := args.Error(1); err != nil {
		return n, fmt.Errorf("mock HistoryDBI cleanup failed: %w", err)
	}
	return n, nil
}

func (m *MockHistoryDBI) GetDBPath() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockHistoryDBI) Close() error {
	args := m.Called()
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock HistoryDBI close failed: %w", err)
	}
	return nil
}

// LaunchEntryMatcher matches any non-nil launch entry with a machine name.
func LaunchEntryMatcher() any {
	return mock.MatchedBy(func(e *database.LaunchEntry) bool {
		return e != nil && e.Machine != ""
	})
}

// LaunchEntryFor matches a launch of the given machine.
func LaunchEntryFor(machine string) any {
	return mock.MatchedBy(func(e *database.LaunchEntry) bool {
		return e != nil && e.Machine == machine
	})
}
