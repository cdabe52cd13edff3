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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-ample/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-ample/pkg/cli"
	"github.com/ZaparooProject/zaparoo-ample/pkg/config"
	"github.com/ZaparooProject/zaparoo-ample/pkg/database/historydb"
	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	if *flags.Version {
		_, _ = fmt.Printf("Zaparoo Ample v%s\n", config.AppVersion)
		return nil
	}

	var logWriters []io.Writer
	if *flags.Verbose {
		logWriters = []io.Writer{os.Stderr}
	}

	cfg, err := cli.Setup(config.BaseDefaults, logWriters)
	if err != nil {
		return err
	}

	if err := telemetry.Init(cfg.ErrorReportingDSN(), config.AppVersion); err != nil {
		log.Warn().Err(err).Msg("error reporting unavailable")
	}
	defer telemetry.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Out:    os.Stdout,
		Fs:     afero.NewOsFs(),
		Exec:   &command.RealExecutor{},
		Cfg:    cfg,
		AppDir: helpers.ExeDir(),
	}
	if wd, err := os.Getwd(); err == nil {
		app.WorkDir = wd
	}

	history, err := historydb.OpenHistoryDB(ctx, helpers.DataDir())
	if err != nil {
		log.Warn().Err(err).Msg("launch history disabled")
	} else {
		app.History = history
		defer func() {
			if err := history.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing history database")
			}
		}()
	}

	err = app.Run(ctx, flags)
	if errors.Is(err, cli.ErrNoMachine) {
		flag.Usage()
	} else if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return err
}
