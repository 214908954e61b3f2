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

// Package markov implements the stochastic weather generator: a
// first-order wet/dry chain conditioning a bivariate-normal max/min
// temperature draw (spec.md §4.5). It is the one WeatherProvider
// implementation the core ships, for sites lacking observed weather.
package markov

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ctessum-labs/hydroterra"
)

// ErrDegenerateCovariance is returned when the week-of-year temperature
// covariance fails the Cauchy-Schwarz bound (cov^2/var_max > var_min),
// making the bivariate-normal draw's Cholesky factorization impossible.
// Per spec.md §7 this is a configuration-class error when caught at
// State construction and a fatal RNG/precondition error when it somehow
// still occurs at Generate time.
var ErrDegenerateCovariance = errors.New("markov: degenerate temperature covariance")

// State is the per-site Markov chain configuration: a wet/dry transition
// probability and wet-day precipitation distribution per day of year, and
// a temperature distribution per week of year (spec.md §3 "Markov state").
// A State carries no RNG of its own -- Generate takes one explicitly, per
// spec.md §4.5/§5's requirement of an explicit, seedable, non-global RNG.
type State struct {
	// Per day-of-year (index 0 = day 1), length 365 or 366.
	PWetGivenWet []float64
	PWetGivenDry []float64
	MeanPrecip   []float64
	SDPrecip     []float64

	// Per week-of-year (index 0 = week 1), length 52.
	MeanTMax, MeanTMin         []float64
	VarTMax, VarTMin, CovTemp  []float64
	CfMaxWet, CfMinWet         []float64
	CfMaxDry, CfMinDry         []float64
}

// Validate checks the configuration-class invariants spec.md §3/§7 require
// at load time: probabilities in [0,1], non-negative precipitation
// parameters, and the Cauchy-Schwarz bound on each week's covariance. It
// returns the first violation found, wrapped with enough context to locate
// it.
func (s *State) Validate() error {
	for d := range s.PWetGivenWet {
		if s.PWetGivenWet[d] < 0 || s.PWetGivenWet[d] > 1 {
			return fmt.Errorf("markov: day %d: p_ww = %g out of [0,1]", d+1, s.PWetGivenWet[d])
		}
		if s.PWetGivenDry[d] < 0 || s.PWetGivenDry[d] > 1 {
			return fmt.Errorf("markov: day %d: p_wd = %g out of [0,1]", d+1, s.PWetGivenDry[d])
		}
		if s.MeanPrecip[d] < 0 || s.SDPrecip[d] < 0 {
			return fmt.Errorf("markov: day %d: negative precipitation mean/sd", d+1)
		}
	}
	for w := range s.VarTMax {
		if s.VarTMin[w] < s.CovTemp[w]*s.CovTemp[w]/s.VarTMax[w] {
			return fmt.Errorf("%w: week %d: var_min=%g < cov^2/var_max=%g", ErrDegenerateCovariance, w+1, s.VarTMin[w], s.CovTemp[w]*s.CovTemp[w]/s.VarTMax[w])
		}
	}
	return nil
}

// DoyToWeek converts a 1-based day-of-year to a 0-based week-of-year index
// in [0,51], reproducing the original source's doy2week(doy) base-0
// convention (spec.md §9 open question) rather than re-deriving it ad hoc
// at each call site.
func DoyToWeek(doy int) int {
	idx := (doy - 1) % 365
	if idx < 0 {
		idx += 365
	}
	return (idx / 7) % 52
}

// Generate draws one day's rain, tmax, tmin from state for day-of-year doy
// given yesterday's rain total, using rng as the sole source of randomness
// (spec.md §4.5). The temperature week looked up is DoyToWeek(doy+1) --
// tomorrow's week -- matching the source's doy2week(doy+1) convention.
func Generate(rng *rand.Rand, state *State, doy int, yesterdayRain float64) (rain, tmax, tmin float64, err error) {
	dIdx := (doy - 1) % len(state.PWetGivenWet)
	if dIdx < 0 {
		dIdx += len(state.PWetGivenWet)
	}
	p := state.PWetGivenDry[dIdx]
	if yesterdayRain > 0 {
		p = state.PWetGivenWet[dIdx]
	}
	u := distuv.UnitUniform{Src: rng}.Rand()
	if u <= p {
		x := distuv.Normal{Mu: state.MeanPrecip[dIdx], Sigma: state.SDPrecip[dIdx], Src: rng}.Rand()
		rain = math.Max(0, x)
	}

	week := DoyToWeek(doy + 1)
	varMax, varMin, cov := state.VarTMax[week], state.VarTMin[week], state.CovTemp[week]
	cov2 := mat.NewSymDense(2, []float64{varMax, cov, cov, varMin})
	var chol mat.Cholesky
	if ok := chol.Factorize(cov2); !ok {
		return 0, 0, 0, fmt.Errorf("%w: week %d", ErrDegenerateCovariance, week+1)
	}
	var l mat.TriDense
	chol.LTo(&l)
	sigmaMax := l.At(0, 0)
	vc10 := l.At(1, 0)
	vc11 := l.At(1, 1)

	z1 := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}.Rand()
	z2 := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}.Rand()
	tmax = sigmaMax*z1 + state.MeanTMax[week]
	tmin = math.Min(tmax, vc10*z1+vc11*z2+state.MeanTMin[week])

	if rain > 0 {
		tmax += state.CfMaxWet[week]
		tmin += state.CfMinWet[week]
	} else {
		tmax += state.CfMaxDry[week]
		tmin += state.CfMinDry[week]
	}
	if tmin > tmax {
		tmin = tmax
	}
	return rain, tmax, tmin, nil
}

// Provider adapts a Markov State into a weather.Provider, filling in only
// the fields MarkovGenerator determines (rain split and temperature); the
// remaining WeatherDay fields (radiation drivers, site geometry) are
// copied from Base on every call, since the chain has no opinion on them.
type Provider struct {
	RNG   *rand.Rand
	State *State
	Base  hydroterra.WeatherDay
}

// Today implements weather.Provider.
func (p *Provider) Today(doy int, yesterdayRain float64) (hydroterra.WeatherDay, error) {
	rain, tmax, tmin, err := Generate(p.RNG, p.State, doy, yesterdayRain)
	if err != nil {
		return hydroterra.WeatherDay{}, err
	}
	w := p.Base
	w.Rain = rain
	w.TAirMax = tmax
	w.TAirMin = tmin
	w.TAirAvg = (tmax + tmin) / 2
	return w, nil
}
