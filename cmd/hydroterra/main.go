/*
Copyright © 2026 the hydroterra authors.
This file is part of hydroterra.

hydroterra is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hydroterra is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hydroterra.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command hydroterra drives the daily hydrothermal engine from a TOML
// site configuration. It is a thin, explicitly out-of-core collaborator
// (spec.md §1): the CLI, output writer, and configuration parsing live
// here so the root package stays free of I/O.
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ctessum-labs/hydroterra"
	"github.com/ctessum-labs/hydroterra/internal/config"
	"github.com/ctessum-labs/hydroterra/weather/markov"
)

var (
	cfgFile string
	days    int
	seed    int64
	verbose bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hydroterra",
		Short: "hydroterra runs the daily soil-water and soil-temperature engine",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a site TOML configuration file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level per-day logging")

	root.AddCommand(runCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the hydroterra version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(hydroterra.Version)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a configured site for a number of days, writing daily fluxes as CSV",
		RunE:  runE,
	}
	cmd.Flags().IntVar(&days, "days", 365, "number of days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the Markov weather generator's RNG")
	return cmd
}

func runE(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("hydroterra run: --config is required")
	}
	site, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("hydroterra run: %w", err)
	}

	logger := logrus.StandardLogger()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	profile, err := site.Profile()
	if err != nil {
		return fmt.Errorf("hydroterra run: %w", err)
	}
	grid, err := site.TemperatureGrid(profile)
	if err != nil {
		return fmt.Errorf("hydroterra run: %w", err)
	}
	state, err := hydroterra.NewState(profile, grid)
	if err != nil {
		return fmt.Errorf("hydroterra run: %w", err)
	}

	params := hydroterra.Params{
		Interception: site.InterceptionParams(),
		Evap:         site.EvapDemandParams(),
		SoilWater:    site.SoilWaterParams(),
		SoilTemp:     site.SoilTemperatureParams(),
	}

	markovState := site.MarkovState()
	if err := markovState.Validate(); err != nil {
		return fmt.Errorf("hydroterra run: %w", err)
	}
	provider := &markov.Provider{RNG: rand.New(rand.NewSource(seed)), State: markovState}

	obs := hydroterra.LogrusObserver{Logger: logger, Site: site.Name}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	if err := w.Write([]string{"day", "aet_cm", "pet_cm", "deep_drainage_cm", "standing_water_cm", "swe_cm"}); err != nil {
		return err
	}

	var yesterdayRain float64
	for day := 1; day <= days; day++ {
		wd, err := provider.Today(day, yesterdayRain)
		if err != nil {
			return fmt.Errorf("hydroterra run: day %d: %w", day, err)
		}
		yesterdayRain = wd.Rain

		fluxes, err := hydroterra.RunDay(state, day, params, wd, hydroterra.BiomassDay{}, obs)
		if err != nil {
			return fmt.Errorf("hydroterra run: day %d: %w", day, err)
		}
		if err := w.Write([]string{
			strconv.Itoa(day),
			strconv.FormatFloat(fluxes.AET, 'f', 6, 64),
			strconv.FormatFloat(fluxes.PET, 'f', 6, 64),
			strconv.FormatFloat(fluxes.DeepDrainage, 'f', 6, 64),
			strconv.FormatFloat(fluxes.StandingWater, 'f', 6, 64),
			strconv.FormatFloat(fluxes.SWE, 'f', 6, 64),
		}); err != nil {
			return err
		}
	}
	return nil
}
