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

// DeltaT is the fixed daily timestep the heat equation integrates over
// (spec.md §6).
const DeltaT = 86400.0 // seconds

// T1 parameters and the surface-under-snow constants, spec.md §4.4/§6.
// Reproduced bit-for-bit from SOILWAT2's SW_Flow_lib.c (see SPEC_FULL.md
// §D) rather than inlined as magic numbers.
const (
	t1Param1 = 15.0
	t1Param2 = -4.0
	t1Param3 = 600.0

	snowSurfaceWet   = -2.0
	snowSurfaceSlope = -0.15
	snowSurfaceScale = 0.3
)

// SoilTemperatureParams is the site configuration SoilTemperatureEngine
// needs beyond the TemperatureGrid itself.
type SoilTemperatureParams struct {
	CsParam1, CsParam2 float64 // heat capacity regression coefficients
	ShParam            float64 // specific heat regression coefficient
}

// surfaceTemperatureUnderSnow reproduces the three-branch snow-surface
// temperature parameterization of spec.md §4.4 exactly, including its
// documented boundary values (spec.md §8): (0,0)=0, (0,1)==-2, (0,6.7)==-2,
// (-10,1) ~ -4.55.
func surfaceTemperatureUnderSnow(tAir, swe float64) float64 {
	if swe == 0 {
		return 0
	}
	if tAir >= 0 {
		return snowSurfaceWet
	}
	damp := snowSurfaceSlope*swe + 1
	if damp < 0 {
		damp = 0
	}
	return snowSurfaceScale*tAir*damp + snowSurfaceWet
}

// ComputeT1 computes the day's surface-temperature boundary condition per
// spec.md §4.4: under snow, via surfaceTemperatureUnderSnow; otherwise
// linear in PET deficit below bmLimiter and linear in excess biomass
// above it.
func ComputeT1(p SoilTemperatureParams, snowDepth, swe, tAir, agb, aet, pet float64) float64 {
	if snowDepth > 0 {
		return surfaceTemperatureUnderSnow(tAir, swe)
	}
	if agb <= bmLimiter {
		aetRatio := 0.0
		if pet > 0 {
			aetRatio = aet / pet
		}
		return tAir + t1Param1*pet*(1-aetRatio)*(1-agb/bmLimiter)
	}
	return tAir + t1Param2*(agb-bmLimiter)/t1Param3
}

// set_frozen_unfrozen's boundary convention (spec.md §9 open question,
// preserved bit-exactly): frozen iff Ts <= FrozenThresholdC AND
// (SWCsat-SWC) < width*SaturationProximityFrac.
func isFrozen(ts, swc float64, l Layer) bool {
	return ts <= FrozenThresholdC && (l.Saturation-swc) < l.Width*SaturationProximityFrac
}

// setFrozenUnfrozen updates s.Frozen from s.Ts and s.SWC, per layer.
func setFrozenUnfrozen(s *State) {
	for i, l := range s.Profile.Layers {
		s.Frozen[i] = isFrozen(s.Ts[i], s.SWC[i], l)
	}
}

// Step runs one day of the finite-difference heat equation on g, given the
// day's surface boundary condition t1 and today's per-layer volumetric
// water content (derived from s.SWC), then projects the result back onto
// the hydrological layers and updates frozen flags. Stability violations
// (alpha[k] > 1) are recorded in s.Status as a non-fatal warning, per
// spec.md §4.4/§7.
func (g *TemperatureGrid) Step(s *State, p SoilTemperatureParams, t1 float64) {
	n := s.Profile.N()
	widths := make([]float64, n)
	vwc := make([]float64, n)
	for i, l := range s.Profile.Layers {
		widths[i] = l.Width
		vwc[i] = s.SWC[i] / l.Width
	}
	vwcR := g.projectSoilToGrid(vwc, vwc[n-1])

	told := g.T
	tnew := make([]float64, g.NRgr)
	prevLeft := t1
	for k := 0; k < g.NRgr; k++ {
		fc, wp := g.FieldCapacityR[k], g.WiltingPointR[k]
		pe := 0.0
		if fc != wp {
			pe = (vwcR[k] - wp) / (fc - wp)
		}
		cs := p.CsParam1 + pe*p.CsParam2
		sh := vwcR[k] + p.ShParam*(1-vwcR[k])
		denom := sh * g.BulkDensityR[k]
		var alpha float64
		if denom != 0 {
			alpha = (DeltaT / (g.DeltaX * g.DeltaX)) * cs / denom
		}
		if alpha > 1.0 {
			s.Status.NumericalWarning(alpha)
		}
		right := g.TConst
		if k+1 < g.NRgr {
			right = told[k+1]
		}
		tnew[k] = told[k] + alpha*(prevLeft-2*told[k]+right)
		prevLeft = tnew[k]
	}
	g.T = tnew

	// Layer 0's fallback, used only when no deeper grid band overlaps it,
	// is explicitly T1 (spec.md §4.4); projectGridToSoil applies this for
	// index 0 only.
	soilT := g.projectGridToSoil(tnew, widths, t1)
	copy(s.Ts, soilT)
	setFrozenUnfrozen(s)
}

// AdjustFusionPool is the Eitzinger-style energy-side freeze/thaw
// correction. The original source ships it disabled, annotated as
// "description seems insufficient" (spec.md §9); hydroterra preserves the
// extension point as a named function. It makes no temperature or water
// adjustment; its only effect is to set s.Status.FusionPoolInit.
// SoilTemperatureParams has no field for plugging in a correction.
func AdjustFusionPool(s *State) {
	// No energy-side correction: see spec.md §9 "Inactive fusion-pool code".
	s.Status.FusionPoolInit = true
}
