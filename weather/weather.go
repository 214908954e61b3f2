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

// Package weather defines the contract daily-timestep sites use to obtain
// each day's weather, and a small set of providers (recorded observations,
// or the stochastic generator in weather/markov) that implement it.
package weather

import (
	"fmt"

	"github.com/ctessum-labs/hydroterra"
)

// Provider yields one day's weather. doy is the 1-based day of year;
// yesterdayRain is the previous day's rain total (cm), which stochastic
// providers use to condition today's wet/dry draw.
type Provider interface {
	Today(doy int, yesterdayRain float64) (hydroterra.WeatherDay, error)
}

// Recorded is a Provider backed by a fixed, pre-observed daily series --
// the common case when observations are available and the MarkovGenerator
// is not needed. It is a thin adapter, not a core component itself.
type Recorded struct {
	Days []hydroterra.WeatherDay // indexed by doy-1
}

// Today returns the recorded entry for doy, or an error if doy is out of
// range for the series.
func (r Recorded) Today(doy int, _ float64) (hydroterra.WeatherDay, error) {
	if doy < 1 || doy > len(r.Days) {
		return hydroterra.WeatherDay{}, fmt.Errorf("weather: day %d out of range for a %d-day recorded series", doy, len(r.Days))
	}
	return r.Days[doy-1], nil
}
