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
	"fmt"
	"math"
)

// Default regression-grid geometry, spec.md §6 domain constants.
const (
	DefaultDeltaX   = 15.0  // cm
	DefaultMaxDepth = 180.0 // cm
)

// TemperatureGrid is the uniform-spacing regression grid SoilTemperatureEngine
// solves its finite-difference heat equation on, together with the
// precomputed overlap-mapping matrix M that lets it move field capacity,
// wilting point, bulk density, and temperature between the grid and the
// (non-uniform) hydrological layer grid without losing mass (spec.md §3,
// §4.4). It is built once per site at initialization and never resized --
// the jagged tlyrs_by_slyrs matrix of the original source becomes the dense
// row-major M here (spec.md §9).
type TemperatureGrid struct {
	DeltaX   float64
	MaxDepth float64
	NRgr     int

	// M is NRgr rows by N+1 columns: M[i][j] for j<N is the overlap width
	// (cm) between grid band i and soil layer j; M[i][N], when nonzero, is
	// negative and records how much of band i lies below the deepest soil
	// layer, to be filled by extrapolating that layer's value.
	M [][]float64

	FieldCapacityR []float64 // volumetric water content at field capacity, per band
	WiltingPointR  []float64 // volumetric water content at wilting point, per band
	BulkDensityR   []float64 // g/cm^3, per band

	T      []float64 // current grid temperatures, °C, one per band
	TConst float64   // deep boundary condition, °C
}

// NewTemperatureGrid builds the regression grid and mapping matrix for p,
// and projects field capacity, wilting point, bulk density, and the
// supplied initial per-layer soil temperatures onto it. It returns a
// configuration-class error (spec.md §7) if maxDepth is shallower than the
// profile's total depth -- matching soil_temperature_init's fatal
// behavior of returning without mutating any temperature-grid arrays.
func NewTemperatureGrid(p *Profile, deltaX, maxDepth, tConst float64, initialTs []float64) (*TemperatureGrid, error) {
	if deltaX <= 0 {
		return nil, fmt.Errorf("hydroterra: NewTemperatureGrid: deltaX must be positive, got %g", deltaX)
	}
	n := p.N()
	totalDepth := 0.0
	widths := make([]float64, n)
	for i, l := range p.Layers {
		widths[i] = l.Width
		totalDepth += l.Width
	}
	if maxDepth < totalDepth {
		return nil, fmt.Errorf("hydroterra: NewTemperatureGrid: maxDepth %g is shallower than profile depth %g", maxDepth, totalDepth)
	}
	if len(initialTs) != n {
		return nil, fmt.Errorf("hydroterra: NewTemperatureGrid: initialTs has %d entries, want %d", len(initialTs), n)
	}

	nRgr := int(math.Round(maxDepth / deltaX))
	g := &TemperatureGrid{
		DeltaX:   deltaX,
		MaxDepth: maxDepth,
		NRgr:     nRgr,
		TConst:   tConst,
		T:        make([]float64, nRgr),
	}

	g.M = make([][]float64, nRgr)
	cumTop := make([]float64, n)
	cum := 0.0
	for j := 0; j < n; j++ {
		cumTop[j] = cum
		cum += widths[j]
	}
	for i := 0; i < nRgr; i++ {
		row := make([]float64, n+1)
		bandTop := float64(i) * deltaX
		bandBottom := bandTop + deltaX
		for j := 0; j < n; j++ {
			layerTop := cumTop[j]
			layerBottom := layerTop + widths[j]
			overlap := math.Min(bandBottom, layerBottom) - math.Max(bandTop, layerTop)
			if overlap > 0 {
				row[j] = overlap
			}
		}
		if bandBottom > totalDepth {
			extra := math.Min(bandBottom, maxDepth) - math.Max(bandTop, totalDepth)
			if extra > 0 {
				row[n] = -extra
			}
		}
		g.M[i] = row
	}

	vfc := make([]float64, n)
	vwp := make([]float64, n)
	bd := make([]float64, n)
	for j, l := range p.Layers {
		vfc[j] = l.FieldCapacity / l.Width
		vwp[j] = l.WiltingPoint / l.Width
		bd[j] = l.BulkDensity
	}
	g.FieldCapacityR = g.projectSoilToGrid(vfc, vfc[n-1])
	g.WiltingPointR = g.projectSoilToGrid(vwp, vwp[n-1])
	g.BulkDensityR = g.projectSoilToGrid(bd, bd[n-1])
	g.T = g.projectSoilToGrid(initialTs, initialTs[n-1])

	return g, nil
}

// projectSoilToGrid mass-weights per-soil-layer values onto the grid bands
// using M, extrapolating from deepestValue for any band extending below
// the profile (the negative last column of M).
func (g *TemperatureGrid) projectSoilToGrid(values []float64, deepestValue float64) []float64 {
	out := make([]float64, g.NRgr)
	n := len(values)
	for i := 0; i < g.NRgr; i++ {
		var sum float64
		row := g.M[i]
		for j := 0; j < n; j++ {
			sum += row[j] * values[j]
		}
		if extra := row[n]; extra != 0 {
			sum += math.Abs(extra) * deepestValue
		}
		out[i] = sum / g.DeltaX
	}
	return out
}

// projectGridToSoil area-weight-averages grid-band values back onto soil
// layers. If a layer receives no overlap from any band (should not happen
// for a correctly built grid), it falls back to fallback -- spec.md §4.4
// specifies this fallback as the surface temperature T1, used only for
// layer 0.
func (g *TemperatureGrid) projectGridToSoil(values []float64, widths []float64, fallback float64) []float64 {
	n := len(widths)
	out := make([]float64, n)
	weight := make([]float64, n)
	for i := 0; i < g.NRgr; i++ {
		row := g.M[i]
		for j := 0; j < n; j++ {
			if row[j] > 0 {
				out[j] += row[j] * values[i]
				weight[j] += row[j]
			}
		}
	}
	for j := 0; j < n; j++ {
		if weight[j] > 0 {
			out[j] /= weight[j]
		} else if j == 0 {
			out[j] = fallback
		}
	}
	return out
}
