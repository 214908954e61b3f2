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

func TestNewTemperatureGridRejectsShallowMaxDepth(t *testing.T) {
	layers := []Layer{{Width: 100, FieldCapacity: 3, Saturation: 4}}
	p, _ := NewProfile(layers)
	if _, err := NewTemperatureGrid(p, 15, 50, 10, []float64{10}); err == nil {
		t.Error("NewTemperatureGrid with maxDepth < profile depth succeeded, want error")
	}
}

func TestTemperatureGridMappingPreservesLayerWidth(t *testing.T) {
	layers := []Layer{
		{Width: 20, FieldCapacity: 6, WiltingPoint: 3, Saturation: 8, BulkDensity: 1.3},
		{Width: 40, FieldCapacity: 12, WiltingPoint: 6, Saturation: 16, BulkDensity: 1.4},
	}
	p, _ := NewProfile(layers)
	g, err := NewTemperatureGrid(p, 15, 90, 10, []float64{10, 10})
	if err != nil {
		t.Fatalf("NewTemperatureGrid: %v", err)
	}
	// Column sums over all bands should reconstruct each layer's width
	// (mass-preserving overlap accounting), ignoring the extrapolation
	// column.
	for j, l := range p.Layers {
		var sum float64
		for i := 0; i < g.NRgr; i++ {
			sum += g.M[i][j]
		}
		if math.Abs(sum-l.Width) > 1e-9 {
			t.Errorf("layer %d: sum of M column = %g, want width %g", j, sum, l.Width)
		}
	}
}

func TestTemperatureGridExtrapolationColumnIsNegative(t *testing.T) {
	layers := []Layer{{Width: 30, FieldCapacity: 9, WiltingPoint: 4.5, Saturation: 12, BulkDensity: 1.3}}
	p, _ := NewProfile(layers)
	g, err := NewTemperatureGrid(p, 15, 90, 10, []float64{10})
	if err != nil {
		t.Fatalf("NewTemperatureGrid: %v", err)
	}
	var sawExtrapolation bool
	for i := 0; i < g.NRgr; i++ {
		if g.M[i][len(layers)] < 0 {
			sawExtrapolation = true
		}
		if g.M[i][len(layers)] > 0 {
			t.Errorf("band %d: extrapolation column is positive (%g), want <= 0", i, g.M[i][len(layers)])
		}
	}
	if !sawExtrapolation {
		t.Error("expected at least one band to extrapolate beyond the 30cm profile within a 90cm grid")
	}
}
