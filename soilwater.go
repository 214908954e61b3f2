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

import "math"

// Frozen-layer conductivity reductions, spec.md §6 domain constants. Cited
// in the original source as "roughly estimated from Parton et al. 1998";
// kept as configurable fields on SoilWaterParams rather than hardcoded, per
// spec.md §9's open question.
const (
	DefaultKsatRelFrozen   = 0.01
	DefaultKunsatRelFrozen = 0.01
)

// SoilWaterParams is the site-level configuration SoilWaterEngine needs
// beyond the Profile itself.
type SoilWaterParams struct {
	SdrainPar       float64 // unsaturated percolation rate constant
	SdrainDpth      float64 // unsaturated percolation depth-decay constant
	KsatRelFrozen   float64 // saturated percolation reduction when frozen
	KunsatRelFrozen float64 // unsaturated percolation reduction when frozen
	MaxCondRoot     float64 // hydraulic redistribution maximum root conductance
	SWPWiltingPoint float64 // bars; SWP threshold gating hydraulic redistribution
}

// layerBareEvapCoeff sums a layer's per-PFT evaporation coefficients into
// the single bare-soil weighting coefficient spec.md §4.2/§4.3 calls
// "ecoeff"; bare-soil evaporation is not itself PFT-specific, but draws
// from whichever PFTs have active roots/cover in that layer.
func layerBareEvapCoeff(l Layer) float64 {
	var c float64
	for pft := 0; pft < NumPFTs; pft++ {
		c += l.EvapCoeff[pft]
	}
	return c
}

// cascadeDown subtracts d[i] from layer i and adds it to layer i+1, or to
// deepDrainage when i is the deepest layer. It mutates s.SWC in place and
// returns the total pushed into deepDrainage.
func cascadeDown(s *State, d []float64) float64 {
	n := s.Profile.N()
	var deepDrainage float64
	for i := 0; i < n; i++ {
		s.SWC[i] -= d[i]
		if i+1 < n {
			s.SWC[i+1] += d[i]
		} else {
			deepDrainage += d[i]
		}
	}
	return deepDrainage
}

// pushOversaturation sweeps from the deepest layer to the surface, pushing
// any excess above saturation into the next layer up (or, at layer 0, into
// standingWater), per spec.md §4.3 step 1's second sweep.
func pushOversaturation(s *State) {
	n := s.Profile.N()
	for j := n - 1; j >= 0; j-- {
		sat := s.Profile.Layers[j].Saturation
		if s.SWC[j] <= sat {
			continue
		}
		excess := s.SWC[j] - sat
		s.SWC[j] = sat
		if j-1 >= 0 {
			s.SWC[j-1] += excess
		} else {
			s.StandingWater += excess
		}
	}
}

// SaturatedPercolation runs spec.md §4.3 step 1: throughfall is added to
// layer 0, then a saturated-flow drain cascades down the profile, followed
// by an upward sweep resolving any over-saturation. Returns deep drainage
// out of the bottom layer.
func (p SoilWaterParams) SaturatedPercolation(s *State, throughfall float64) float64 {
	s.SWC[0] += throughfall
	n := s.Profile.N()
	var deepDrainage float64
	for i, l := range s.Profile.Layers {
		ksatRel := 1.0
		if s.Frozen[i] {
			ksatRel = p.ksatRelFrozen()
		}
		// Computed after layer i has received layer i-1's drain.
		drain := ksatRel * (1 - l.Impermeability) * (s.SWC[i] - l.FieldCapacity)
		if drain < 0 {
			drain = 0
		}
		s.SWC[i] -= drain
		if i+1 < n {
			s.SWC[i+1] += drain
		} else {
			deepDrainage += drain
		}
	}
	pushOversaturation(s)
	return deepDrainage
}

func (p SoilWaterParams) ksatRelFrozen() float64 {
	if p.KsatRelFrozen != 0 {
		return p.KsatRelFrozen
	}
	return DefaultKsatRelFrozen
}

func (p SoilWaterParams) kunsatRelFrozen() float64 {
	if p.KunsatRelFrozen != 0 {
		return p.KunsatRelFrozen
	}
	return DefaultKunsatRelFrozen
}

// UnsaturatedPercolation runs spec.md §4.3 step 3.
func (p SoilWaterParams) UnsaturatedPercolation(s *State) float64 {
	n := s.Profile.N()
	d := make([]float64, n)
	for i, l := range s.Profile.Layers {
		if s.SWC[i] <= l.MinWaterContent {
			continue
		}
		var dPot float64
		if s.SWC[i] > l.FieldCapacity {
			dPot = p.SdrainPar
		} else {
			dPot = p.SdrainPar * math.Exp((s.SWC[i]-l.FieldCapacity)*p.SdrainDpth/l.Width)
		}
		kunsatRel := 1.0
		if s.Frozen[i] {
			kunsatRel = p.kunsatRelFrozen()
		}
		avail := s.SWC[i] - l.MinWaterContent
		drain := kunsatRel * (1 - l.Impermeability) * math.Min(avail, dPot)
		if drain < 0 {
			drain = 0
		}
		d[i] = drain
	}
	deepDrainage := cascadeDown(s, d)
	pushOversaturation(s)
	return deepDrainage
}

// Withdraw distributes rate (cm/day) across the layers weighted by
// coeff[i]/|SWP(SWC[i])| (normalized), skipping frozen layers, capping each
// layer's draw at max(0, SWC[i]-SWCmin[i]) (spec.md §4.3 step 2). It
// accumulates the actual withdrawal into s.AET and returns it.
func Withdraw(s *State, coeff []float64, rate float64) float64 {
	n := s.Profile.N()
	weights := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		if s.Frozen[i] || coeff[i] <= 0 {
			continue
		}
		swp := soilWaterPotential(s.SWC[i], s.Profile.Layers[i])
		w := coeff[i] / math.Max(math.Abs(swp), 1e-6)
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return 0
	}
	var withdrawn float64
	for i := 0; i < n; i++ {
		if weights[i] <= 0 {
			continue
		}
		share := rate * weights[i] / total
		avail := s.SWC[i] - s.Profile.Layers[i].MinWaterContent
		if avail < 0 {
			avail = 0
		}
		if share > avail {
			share = avail
		}
		if share < 0 {
			share = 0
		}
		s.SWC[i] -= share
		withdrawn += share
	}
	s.AET += withdrawn
	return withdrawn
}

// HydraulicRedistribution runs spec.md §4.3 step 4 (Ryel et al. 2002):
// for each PFT with nonzero cover, builds the pairwise redistribution
// matrix H[i][j] between unfrozen layer pairs where at least one layer's
// SWP exceeds the wilting-point threshold, scales each row so no layer
// loses more than its available water (SWC-SWCwp), and applies the row
// sums to SWC scaled by that PFT's cover fraction. Layer 0 is exempt (its
// row and column are never populated).
func (p SoilWaterParams) HydraulicRedistribution(s *State, pftCover [NumPFTs]float64) {
	n := s.Profile.N()
	if n < 2 {
		return
	}
	swp := make([]float64, n)
	relCond := make([]float64, n)
	for i, l := range s.Profile.Layers {
		swp[i] = soilWaterPotential(s.SWC[i], l)
		denom := l.Saturation - l.MinWaterContent
		rc := 0.0
		if denom > 0 {
			rc = (s.SWC[i] - l.MinWaterContent) / denom
		}
		relCond[i] = math.Max(0, math.Min(1, rc))
	}

	for pft := 0; pft < NumPFTs; pft++ {
		if pftCover[pft] <= 0 {
			continue
		}
		rowSum := make([]float64, n)
		for i := 1; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if s.Frozen[i] || s.Frozen[j] {
					continue
				}
				if !(swp[i] > p.SWPWiltingPoint || swp[j] > p.SWPWiltingPoint) {
					continue
				}
				ri := s.Profile.Layers[i].RootFrac[pft]
				rj := s.Profile.Layers[j].RootFrac[pft]
				// Rx is the root fraction of whichever of the pair currently
				// holds more water, not the deeper layer's -- a data-dependent
				// choice, not an index-based one (SW_Flow_lib.c's
				// hydraulic_redistribution: `if (swc[i] > swc[j]) Rx = ...[i];
				// else Rx = ...[j];`).
				rootMax := rj
				if s.SWC[i] > s.SWC[j] {
					rootMax = ri
				}
				if 1-rootMax <= 0 {
					continue
				}
				hij := p.MaxCondRoot * (10.0 / 24.0) * (swp[j] - swp[i]) *
					math.Max(relCond[i], relCond[j]) * (ri * rj / (1 - rootMax))
				rowSum[i] += hij
				rowSum[j] -= hij
			}
		}
		for i := 1; i < n; i++ {
			if rowSum[i] >= 0 {
				continue
			}
			avail := s.SWC[i] - s.Profile.Layers[i].WiltingPoint
			if avail < 0 {
				avail = 0
			}
			loss := -rowSum[i]
			if loss > avail && loss > 0 {
				rowSum[i] *= avail / loss
			}
		}
		for i := 1; i < n; i++ {
			s.SWC[i] += rowSum[i] * pftCover[pft]
		}
	}
}

// RunSoilWaterEngine executes spec.md §4.3's four steps in strict order for
// one day and returns the day's deep drainage (the sum from both
// percolation steps).
func (p SoilWaterParams) RunSoilWaterEngine(s *State, throughfall, esRate float64, pftTranspRate [NumPFTs]float64, pftCover [NumPFTs]float64) float64 {
	deepDrainage := p.SaturatedPercolation(s, throughfall)

	n := s.Profile.N()
	esCoeff := make([]float64, n)
	for i, l := range s.Profile.Layers {
		esCoeff[i] = layerBareEvapCoeff(l)
	}
	Withdraw(s, esCoeff, esRate)

	for pft := 0; pft < NumPFTs; pft++ {
		if pftTranspRate[pft] <= 0 {
			continue
		}
		coeff := make([]float64, n)
		for i, l := range s.Profile.Layers {
			coeff[i] = l.TranspCoeff[pft]
		}
		Withdraw(s, coeff, pftTranspRate[pft])
	}

	deepDrainage += p.UnsaturatedPercolation(s)
	p.HydraulicRedistribution(s, pftCover)
	return deepDrainage
}
