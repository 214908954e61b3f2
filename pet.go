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

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Domain constants from the external-interface table (spec.md §6) that
// EvapDemandModel relies on.
const (
	bmLimiter   = 300.0 // g/m^2; AGB at/above which T1's linear form switches
	fbseMax     = 0.995 // cap on bare-soil fraction of potential demand
	petMinCmDay = 0.001 // 0.01 mm/day floor, expressed in cm/day
)

// solarLangleyPerMin is the Kopp et al. (2011) solar constant S = 1.952
// ly/min used by petfunc's Sellers shortwave term (SW_Flow_lib.c:461).
const solarLangleyPerMin = 1.952

// EvapDemandParams collects the per-PFT shape parameters EvapDemandModel
// needs; these are site/vegetation configuration, not physical constants.
type EvapDemandParams struct {
	// Lambda is the LAI decay coefficient used in the bare-soil/transpiration
	// split (spec.md §4.2).
	Lambda [NumPFTs]float64

	// EsLimitAGB is the aboveground-biomass threshold at/above which
	// bare-soil evaporation is zero.
	EsLimitAGB float64

	// ShadeDeadMax is the dead-biomass threshold below which the shade
	// factor is always 1.
	ShadeDeadMax float64
	// ShadeScale is the floor the shade factor relaxes to when dead
	// biomass dominates.
	ShadeScale float64
	// ShadeTanfunc{A,B,C,D} parameterize the tanfunc calls applied to live
	// and dead biomass in the shade-factor ratio.
	ShadeTanfuncA, ShadeTanfuncB, ShadeTanfuncC, ShadeTanfuncD float64

	// SWPInflec, SWPRange, and SWPShape are watrate's shape/inflec/range
	// tanfunc parameters (spec.md §4.2; SW_Flow_lib.c:890-913's `inflec`,
	// `range`, `shape` arguments), shared by bare-soil evaporation and
	// transpiration.
	SWPInflec, SWPRange, SWPShape float64
}

// petSteepness reproduces watrate's par1 -- the sigmoid amplitude used in
// the SWP-based reduction function f(SWP,PET), a three-segment function of
// potential ET alone (SW_Flow_lib.c:874-897): 3.0 below PET=0.2, rising
// linearly to 5.0 at PET=0.4 and to 8.0 at PET=0.6, constant at 8.0 above.
// These breakpoints and endpoints are fixed constants in the original, not
// site configuration.
func (p EvapDemandParams) petSteepness(pet float64) float64 {
	switch {
	case pet < 0.2:
		return 3.0
	case pet < 0.4:
		return (0.4-pet)*-10.0 + 5.0
	case pet < 0.6:
		return (0.6-pet)*-15.0 + 8.0
	default:
		return 8.0
	}
}

// swpReduction is watrate (SW_Flow_lib.c:873-916): the demand-reduction
// factor f(SWP,PET) shared by bare-soil evaporation and transpiration.
// tanfunc's raw range is [SWPInflec, petSteepness(pet)], not [0,1], so the
// result is clamped afterward exactly as watrate's own `fmin(fmax(...))`
// does.
func (p EvapDemandParams) swpReduction(swp, swpCrit, pet float64) float64 {
	par1 := p.petSteepness(pet)
	result := tanfunc(swpCrit-swp, par1, p.SWPInflec, p.SWPRange, p.SWPShape)
	return math.Max(0, math.Min(1, result))
}

// soilWaterPotential converts a layer's water content to soil water
// potential in bars (negative), interpolating linearly between field
// capacity (SWP=-0.033 bar) and wilting point (SWP=-15 bar), and linearly
// from -0.033 bar toward 0 between field capacity and saturation. Below the
// wilting point the line is extended past -15 bar. This is the internal SWP(SWC) function referenced
// throughout spec.md §4.2/§4.3.
func soilWaterPotential(swc float64, l Layer) float64 {
	const fcPotential, wpPotential = -0.033, -15.0
	if l.Saturation <= 0 {
		return 0
	}
	if swc >= l.FieldCapacity {
		if l.Saturation == l.FieldCapacity {
			return fcPotential
		}
		frac := (swc - l.FieldCapacity) / (l.Saturation - l.FieldCapacity)
		return fcPotential * (1 - frac) // relaxes toward 0 as swc -> saturation
	}
	if l.FieldCapacity == l.WiltingPoint {
		return wpPotential
	}
	frac := (l.FieldCapacity - swc) / (l.FieldCapacity - l.WiltingPoint)
	if frac < 0 {
		frac = 0
	}
	return fcPotential + frac*(wpPotential-fcPotential)
}

// PETInputs bundles the radiation-chain drivers PET needs beyond the
// per-day weather record.
type PETInputs struct {
	DayOfYear int
	Weather   WeatherDay
}

// PotentialET is a direct port of SOILWAT2's petfunc (SW_Flow_lib.c:387-521):
// Penman (1948) evaporation from open water, with Spencer (1971) solar
// declination, Sellers (1965) shortwave radiation (integrated hourly over
// the sunlit hour angle when the site has nonzero slope, analytic for a
// flat site), and the Allen et al. (1998, eq.13) saturation-vapor-slope and
// (1998, eq.7-8) pressure/psychrometric-constant forms. Internal units are
// mmHg/°F per spec.md §4.2; the result is clamped to a floor of 0.01
// mm/day, expressed here in cm/day, and is never negative.
//
// petfunc's transcoeff parameter (a monthly transmission coefficient) is
// multiplied into solrad and then divided back out of shwave -- it cancels
// exactly and is annotated "not used in result" in the original, so it is
// omitted here rather than threaded through as a no-op.
func PotentialET(in PETInputs) float64 {
	w := in.Weather
	latRad := w.Latitude * math.Pi / 180
	declRad := spencerDeclination(in.DayOfYear)

	par2 := -math.Tan(latRad) * math.Tan(declRad) // cos(H), H = sunset hour angle
	par1 := math.Sqrt(1 - par2*par2)              // sin(H)
	ahou := math.Max(math.Atan2(par1, par2), 0)

	var solrad float64 // langleys/day
	if w.Slope != 0 {
		slopeRad := w.Slope * math.Pi / 180
		aspectSlopeRad := (w.Aspect - 180) * math.Pi / 180
		step := ahou / 24
		for hou := -ahou; hou <= ahou; hou += step {
			cosZ := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(hou)
			sinZ := math.Sqrt(1 - cosZ*cosZ)
			cosA := (math.Sin(latRad)*cosZ - math.Sin(declRad)) / (math.Cos(latRad) * sinZ)
			sinA := (math.Cos(declRad) * math.Sin(hou)) / sinZ
			azmth := math.Atan2(sinA, cosA)
			solrad += step * (cosZ*math.Cos(slopeRad) + sinZ*math.Sin(slopeRad)*math.Cos(azmth-aspectSlopeRad))
		}
	} else {
		solrad = ahou*math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Sin(ahou)
		solrad *= 2
	}
	solrad = (1440 / math.Pi) * solarLangleyPerMin * solrad

	shwave := solrad * 0.0168 // ly/day -> evaporation-equivalent mm/day

	kelvin := w.TAirAvg + 273.15
	ftemp := kelvin * 0.01
	ftemp = ftemp * ftemp * ftemp * ftemp * 11.71 * 0.0168 // Sellers (1965) eq.3.8, black-body radiation

	vapor := svapor(w.TAirAvg) // ea, mmHg
	arads := 4098 * vapor / ((w.TAirAvg + 237.3) * (w.TAirAvg + 237.3)) * 5 / 9
	clrsky := 1 - math.Max(0, math.Min(1, w.Cloud))
	humid := vapor * math.Max(0, math.Min(1, w.Humidity)) // ed, mmHg
	windsp := w.Wind * 53.70                              // m/s -> miles/day

	penmanPar1 := 0.35 * (vapor - humid) * (1 + 0.0098*windsp)
	penmanPar2 := (1-w.Albedo)*shwave*(0.18+0.55*clrsky) -
		ftemp*(0.56-0.092*math.Sqrt(humid))*(0.10+0.90*clrsky)

	pressure := 101.3 * math.Pow((293-0.0065*w.Elevation)/293, 5.26) // kPa
	gamma := 0.000665 * pressure * 760 / 101.325 * 5 / 9             // mmHg/°F

	result := (arads*penmanPar2 + gamma*penmanPar1) / (arads + gamma) / 10
	if result < petMinCmDay {
		result = petMinCmDay
	}
	return result
}

func spencerDeclination(doy int) float64 {
	g := 2 * math.Pi * float64(doy-1) / 365
	return 0.006918 - 0.399912*math.Cos(g) + 0.070257*math.Sin(g) -
		0.006758*math.Cos(2*g) + 0.000907*math.Sin(2*g) -
		0.002697*math.Cos(3*g) + 0.00148*math.Sin(3*g)
}

// EsTSplit is the fraction of potential demand assigned to bare-soil
// evaporation (Es) versus transpiration (T) for one PFT, per spec.md §4.2.
type EsTSplit struct {
	Fbse, Fbst float64
}

// PartitionDemand computes the per-PFT Es/T split from live LAI.
func PartitionDemand(p EvapDemandParams, pft PFT, laiLive float64) EsTSplit {
	fbse := math.Min(math.Exp(-p.Lambda[pft]*laiLive), fbseMax)
	return EsTSplit{Fbse: fbse, Fbst: 1 - fbse}
}

// BareSoilEvapRate computes the day's bare-soil evaporation rate (cm/day)
// from the profile's current water content, spec.md §4.2.
//
// agb is total aboveground biomass (live+litter) summed over all PFTs,
// g/m^2; swpCrit is the critical SWP (bars) at which the reduction
// function begins to bind.
func BareSoilEvapRate(s *State, p EvapDemandParams, fbse, swpCrit, agb float64) float64 {
	if agb >= p.EsLimitAGB {
		return 0
	}
	weights := make([]float64, s.Profile.N())
	swps := make([]float64, s.Profile.N())
	for i, l := range s.Profile.Layers {
		if s.Frozen[i] {
			continue
		}
		var ecoeff float64
		for pft := 0; pft < NumPFTs; pft++ {
			ecoeff += l.EvapCoeff[pft]
		}
		weights[i] = l.Width * ecoeff
		swps[i] = soilWaterPotential(s.SWC[i], l)
	}
	totalW := floats.Sum(weights)
	if totalW <= 0 {
		return 0
	}
	var swpAvg float64
	for i := range weights {
		swpAvg += weights[i] * swps[i] / totalW
	}
	f := p.swpReduction(swpAvg, swpCrit, s.PET)
	return s.PET * f * (1 - agb/p.EsLimitAGB) * fbse
}

// TranspirationRate computes one PFT's transpiration rate (cm/day) from a
// set of transpiration regions (each a contiguous slice of layer indices);
// the region with the smallest reduction factor governs, per spec.md
// §4.2's "minimum across regions governs transpiration stress".
func TranspirationRate(s *State, p EvapDemandParams, pft PFT, regions [][]int, swpCrit float64, liveBM, deadBM, fbst float64) float64 {
	if len(regions) == 0 {
		return 0
	}
	minF := math.Inf(1)
	for _, region := range regions {
		var weight, wswp float64
		for _, i := range region {
			if i < 0 || i >= s.Profile.N() || s.Frozen[i] {
				continue
			}
			l := s.Profile.Layers[i]
			w := l.Width * l.TranspCoeff[pft]
			weight += w
			wswp += w * soilWaterPotential(s.SWC[i], l)
		}
		if weight <= 0 {
			continue
		}
		swpAvg := wswp / weight
		f := p.swpReduction(swpAvg, swpCrit, s.PET)
		if f < minF {
			minF = f
		}
	}
	if math.IsInf(minF, 1) {
		return 0
	}
	shade := shadeFactor(p, liveBM, deadBM)
	return minF * shade * s.PET * fbst
}

// shadeFactor is 1 unless dead biomass exceeds ShadeDeadMax, in which case
// it relaxes toward ShadeScale according to the ratio of tanfunc(live) to
// tanfunc(dead), per spec.md §4.2.
func shadeFactor(p EvapDemandParams, liveBM, deadBM float64) float64 {
	if deadBM < p.ShadeDeadMax {
		return 1
	}
	tLive := tanfunc(liveBM, p.ShadeTanfuncA, p.ShadeTanfuncB, p.ShadeTanfuncC, p.ShadeTanfuncD)
	tDead := tanfunc(deadBM, p.ShadeTanfuncA, p.ShadeTanfuncB, p.ShadeTanfuncC, p.ShadeTanfuncD)
	if tDead == 0 {
		return p.ShadeScale
	}
	v := tLive/tDead*(1-p.ShadeScale) + p.ShadeScale
	return math.Min(v, 1)
}
