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

package hydroterra

import "fmt"

// Frozen threshold and saturation-proximity constants from the domain
// constants table. These are interface-visible: callers and tests may
// depend on the exact values.
const (
	FrozenThresholdC       = -1.0  // Ts <= this is a candidate for frozen
	SaturationProximityFrac = 0.13 // (SWCsat - SWC) < width*this => frozen
)

// Status carries per-site, non-process-wide error and warning state across
// a RunDay call. A zero Status is ready to use. FatalErr, once set, means
// the site run must be aborted by the driver; Status itself never panics
// or logs.
//
// TempInit and FusionPoolInit are the two "first call" latches the original
// source kept as module-globals (see DESIGN.md, state.go); here they live on
// the per-site State so that concurrent sites never interfere.
type Status struct {
	FatalErr error

	// NumericalWarnings counts heat-equation stability violations (alpha >
	// 1 on some band) accumulated over the site's lifetime; MaxAlpha is the
	// worst single value seen. Neither aborts the run.
	NumericalWarnings int
	MaxAlpha          float64

	TempInit       bool
	FusionPoolInit bool
}

// Fatal records a fatal, site-aborting error. Only the first call takes
// effect; subsequent calls are no-ops so the original cause is preserved.
func (s *Status) Fatal(err error) {
	if s.FatalErr == nil {
		s.FatalErr = err
	}
}

// OK reports whether the site has not yet hit a fatal error.
func (s *Status) OK() bool { return s.FatalErr == nil }

// NumericalWarning records a heat-equation stability excursion.
func (s *Status) NumericalWarning(alpha float64) {
	s.NumericalWarnings++
	if alpha > s.MaxAlpha {
		s.MaxAlpha = alpha
	}
}

// State is the complete per-site mutable daily state: current soil water
// content, frozen flags, previous-day soil temperatures, the surface pools,
// the temperature-grid working state, and the error/warning Status. A
// State is built once per site at initialization (sized from a Profile and
// a TemperatureGrid) and is never resized; RunDay mutates it in place, day after
// day.
type State struct {
	Profile *Profile

	SWC    []float64 // cm, per hydrological layer
	Frozen []bool    // per hydrological layer
	Ts     []float64 // previous day's soil temperature, °C, per hydrological layer

	StandingWater float64 // cm
	SWE           float64 // cm
	SnowDepth     float64 // cm

	TSurfYesterday float64 // °C
	TSurfToday     float64 // °C

	AET float64 // cm, accumulated by the most recent RunDay
	PET float64 // cm, today's potential evapotranspiration

	Grid *TemperatureGrid

	Status Status
}

// NewState allocates a State sized from p and grid, with every layer's
// water content initialized to field capacity and every layer unfrozen.
// grid may be nil, in which case the caller is responsible for building
// and attaching one with NewTemperatureGrid before the first RunDay call
// that exercises SoilTemperatureEngine.
func NewState(p *Profile, grid *TemperatureGrid) (*State, error) {
	if p == nil {
		return nil, fmt.Errorf("hydroterra: NewState: profile must not be nil")
	}
	n := p.N()
	s := &State{
		Profile: p,
		SWC:     make([]float64, n),
		Frozen:  make([]bool, n),
		Ts:      make([]float64, n),
		Grid:    grid,
	}
	for i, l := range p.Layers {
		s.SWC[i] = l.FieldCapacity
	}
	return s, nil
}

// DailyFluxes aggregates the scalar outputs of one RunDay call: the
// mass-balance terms spec.md §3/§8 requires to close, plus the per-PFT and
// litter interception breakdown. It is the explicit return aggregate
// replacing the original source's pointer-output parameters (see
// DESIGN.md, state.go).
type DailyFluxes struct {
	AET               float64          // cm
	PET               float64          // cm
	DeepDrainage      float64          // cm, pushed out of the deepest layer
	SurfaceRunoff     float64          // cm, from standingWater overflow (driver-defined cap)
	SnowRunoff        float64          // cm, today's snowmelt, routed to the soil surface with throughfall
	InterceptedCanopy [NumPFTs]float64 // cm
	InterceptedLitter float64          // cm
	Throughfall       float64          // cm reaching the soil surface after interception
	StandingWater     float64          // cm, end-of-day pool
	SWE               float64          // cm, end-of-day snow-water-equivalent
}

// WeatherDay is one day's weather inputs to the pipeline: today's air
// temperature, today's precipitation split into rain and
// snow, and the slowly-varying drivers EvapDemandModel needs.
type WeatherDay struct {
	TAirMax, TAirMin, TAirAvg float64 // °C
	Rain, Snow                float64 // cm
	Cloud, Humidity, Wind     float64 // monthly means; cloud/humidity fractional, wind in the model's native units

	Latitude, Elevation float64 // degrees, meters
	Slope, Aspect       float64 // degrees
	Albedo              float64 // fraction
}

// BiomassDay is one day's per-PFT biomass/LAI inputs, already adjusted by
// the CO2 scenario multiplier the driver is responsible for applying
// (spec.md §1, §6 "CO2 coupling").
type BiomassDay struct {
	Live   [NumPFTs]float64 // g/m^2
	Litter [NumPFTs]float64 // g/m^2
	LAI    [NumPFTs]float64
	Cover  [NumPFTs]float64 // vegcov fraction in [0,1]; LAI stands in for tree cover in interception

	// WUEMultiplier scales transpiration demand per PFT (the water-use
	// efficiency multiplier from the CO2 coupling table).
	WUEMultiplier [NumPFTs]float64
}
