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
	"testing"
)

func fiveLayerAtMin(t *testing.T, impermeability []float64) *State {
	t.Helper()
	layers := make([]Layer, 5)
	for i := range layers {
		layers[i] = Layer{
			Width: 10, FieldCapacity: 3, WiltingPoint: 1.5, MinWaterContent: 1, Saturation: 4,
			Impermeability: impermeability[i],
		}
	}
	p, err := NewProfile(layers)
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	s, err := NewState(p, nil)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	for i := range s.SWC {
		s.SWC[i] = layers[i].MinWaterContent
	}
	return s
}

func TestSaturatedPercolationMassBalance(t *testing.T) {
	s := fiveLayerAtMin(t, []float64{0, 0, 0, 0.8, 0})
	params := SoilWaterParams{}
	before := sumSWC(s)
	deepDrainage := params.SaturatedPercolation(s, 20)
	after := sumSWC(s)
	total := deepDrainage + s.StandingWater + (after - before)
	if math.Abs(total-20) > 1e-6 {
		t.Errorf("mass balance: deepDrainage+standingWater+deltaSWC = %g, want 20", total)
	}
}

func TestSaturatedPercolationFrozenLayerReducesDrain(t *testing.T) {
	layers := []Layer{
		{Width: 10, FieldCapacity: 3, WiltingPoint: 1.5, MinWaterContent: 1, Saturation: 4},
	}
	p, _ := NewProfile(layers)
	unfrozen, _ := NewState(p, nil)
	unfrozen.SWC[0] = 4 // at saturation already, above field capacity
	frozen, _ := NewState(p, nil)
	frozen.SWC[0] = 4
	frozen.Frozen[0] = true

	params := SoilWaterParams{}
	params.SaturatedPercolation(unfrozen, 0)
	params.SaturatedPercolation(frozen, 0)

	if frozen.SWC[0] <= unfrozen.SWC[0] {
		t.Errorf("frozen layer drained as much as unfrozen: frozen SWC=%g unfrozen SWC=%g", frozen.SWC[0], unfrozen.SWC[0])
	}
}

func TestWithdrawCapsAtMinWaterContent(t *testing.T) {
	layers := []Layer{
		{Width: 10, FieldCapacity: 3, WiltingPoint: 1.5, MinWaterContent: 1, Saturation: 4},
	}
	p, _ := NewProfile(layers)
	s, _ := NewState(p, nil)
	s.SWC[0] = 1.2
	coeff := []float64{1}
	withdrawn := Withdraw(s, coeff, 10) // demand far exceeds available water
	if s.SWC[0] < layers[0].MinWaterContent-1e-9 {
		t.Errorf("SWC dropped below MinWaterContent: %g", s.SWC[0])
	}
	if math.Abs(withdrawn-0.2) > 1e-9 {
		t.Errorf("withdrawn = %g, want 0.2 (capped)", withdrawn)
	}
	if s.AET != withdrawn {
		t.Errorf("AET = %g, want %g", s.AET, withdrawn)
	}
}

func TestHydraulicRedistributionConservesMassWithoutClamp(t *testing.T) {
	layers := []Layer{
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5},
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5},
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5},
	}
	for i := range layers {
		layers[i].RootFrac[Grass] = 1.0 / 3
	}
	p, _ := NewProfile(layers)
	s, _ := NewState(p, nil)
	s.SWC[1] = 1.0 // dry shallow-ish layer
	s.SWC[2] = 2.9 // wet deep layer, well above wilting point

	params := SoilWaterParams{MaxCondRoot: 0.01, SWPWiltingPoint: -15}
	before := sumSWC(s)
	params.HydraulicRedistribution(s, [NumPFTs]float64{Grass: 1})
	after := sumSWC(s)
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("hydraulic redistribution changed total SWC: before=%g after=%g", before, after)
	}
	if s.SWC[1] <= 1.0 {
		t.Errorf("layer 1 did not gain water from the wetter layer 2: SWC=%g", s.SWC[1])
	}
}

func TestHydraulicRedistributionExemptsLayerZero(t *testing.T) {
	layers := []Layer{
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5},
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5},
	}
	layers[0].RootFrac[Grass] = 0.5
	layers[1].RootFrac[Grass] = 0.5
	p, _ := NewProfile(layers)
	s, _ := NewState(p, nil)
	s.SWC[0] = 0.6
	s.SWC[1] = 2.9
	before0 := s.SWC[0]

	params := SoilWaterParams{MaxCondRoot: 0.01, SWPWiltingPoint: -15}
	params.HydraulicRedistribution(s, [NumPFTs]float64{Grass: 1})
	if s.SWC[0] != before0 {
		t.Errorf("layer 0 SWC changed from %g to %g; layer 0 must be exempt", before0, s.SWC[0])
	}
}

// TestHydraulicRedistributionPicksRootFracFromWetterLayer exercises the case
// the mass-conservation test above does not: layers with different root
// fractions where the *shallower* of the pair is the wetter one. Rx must
// come from whichever layer holds more water (SW_Flow_lib.c:1163-1168), not
// from the deeper layer by index.
func TestHydraulicRedistributionPicksRootFracFromWetterLayer(t *testing.T) {
	layers := []Layer{
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5},
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5, RootFrac: [NumPFTs]float64{Grass: 0.2}},
		{Width: 10, FieldCapacity: 3, WiltingPoint: 0.5, MinWaterContent: 0, Saturation: 5, RootFrac: [NumPFTs]float64{Grass: 0.6}},
	}
	p, _ := NewProfile(layers)
	s, _ := NewState(p, nil)
	s.SWC[1] = 2.9 // shallower of the pair, and wetter
	s.SWC[2] = 1.0 // deeper, and drier

	ri, rj := layers[1].RootFrac[Grass], layers[2].RootFrac[Grass]
	swpI := soilWaterPotential(s.SWC[1], layers[1])
	swpJ := soilWaterPotential(s.SWC[2], layers[2])
	relI := (s.SWC[1] - layers[1].MinWaterContent) / (layers[1].Saturation - layers[1].MinWaterContent)
	relJ := (s.SWC[2] - layers[2].MinWaterContent) / (layers[2].Saturation - layers[2].MinWaterContent)

	const maxCondRoot = 0.01
	wantRootMax := ri // layer 1 holds more water, so Rx must come from layer 1
	wantHij := maxCondRoot * (10.0 / 24.0) * (swpJ - swpI) * math.Max(relI, relJ) * (ri * rj / (1 - wantRootMax))

	params := SoilWaterParams{MaxCondRoot: maxCondRoot, SWPWiltingPoint: -15}
	params.HydraulicRedistribution(s, [NumPFTs]float64{Grass: 1})

	wantSWC1 := 2.9 + wantHij
	if math.Abs(s.SWC[1]-wantSWC1) > 1e-9 {
		t.Errorf("SWC[1] = %g, want %g (Rx should use layer 1's root frac since it is wetter)", s.SWC[1], wantSWC1)
	}
}

func sumSWC(s *State) float64 {
	var total float64
	for _, v := range s.SWC {
		total += v
	}
	return total
}
