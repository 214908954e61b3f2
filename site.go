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

// MaxLayers is the conventional upper bound on the number of soil layers in
// a profile. It is not enforced as a hard allocation limit -- profiles are
// sized from configuration at initialization -- but NewProfile rejects any
// profile with more than MaxLayers layers as almost certainly a
// configuration mistake.
const MaxLayers = 25

// Layer holds the static, never-resized physical properties of one soil
// layer. All water-content fields are in centimeters of water held by the
// full layer (not volumetric fractions).
type Layer struct {
	Width          float64 // layer thickness [cm]
	BulkDensity    float64 // [g/cm^3]
	GravelFrac     float64 // fraction of volume occupied by gravel
	FieldCapacity  float64 // SWC_fc [cm]
	WiltingPoint   float64 // SWC_wp [cm]
	MinWaterContent float64 // SWC_min [cm]
	Saturation     float64 // SWC_sat [cm]
	Impermeability float64 // fraction in [0,1]; 1 = fully impermeable

	// EvapCoeff and TranspCoeff are per-PFT fractions of the respective
	// flux that this layer draws from; coefficients for a given PFT sum to
	// 1 across that PFT's active layers.
	EvapCoeff   [NumPFTs]float64
	TranspCoeff [NumPFTs]float64

	// SWPCritical is the per-PFT critical soil water potential [bars,
	// negative] below which this layer is excluded from that PFT's
	// soil-water-availability reckoning.
	SWPCritical [NumPFTs]float64

	// RootFrac is the per-PFT fraction of that PFT's total root mass
	// present in this layer, used by hydraulic redistribution.
	RootFrac [NumPFTs]float64
}

// Profile is an ordered, immutable-after-construction sequence of soil
// layers. Layer 0 is the soil surface layer; hydraulic redistribution is
// disallowed into or out of it.
type Profile struct {
	Layers []Layer
}

// NewProfile validates and wraps layers into a Profile. It returns an error
// -- a configuration-class error per the error taxonomy -- if the layer
// count is out of range or any layer's water-content bounds are
// inconsistent.
func NewProfile(layers []Layer) (*Profile, error) {
	n := len(layers)
	if n < 1 {
		return nil, fmt.Errorf("hydroterra: profile must have at least one layer")
	}
	if n > MaxLayers {
		return nil, fmt.Errorf("hydroterra: profile has %d layers, more than the conventional maximum of %d", n, MaxLayers)
	}
	for i, l := range layers {
		if l.Width <= 0 {
			return nil, fmt.Errorf("hydroterra: layer %d: width must be positive, got %g", i, l.Width)
		}
		if !(l.MinWaterContent <= l.WiltingPoint+1e-9 && l.WiltingPoint <= l.FieldCapacity+1e-9 && l.FieldCapacity <= l.Saturation+1e-9) {
			return nil, fmt.Errorf("hydroterra: layer %d: water content bounds must satisfy min <= wp <= fc <= sat, got min=%g wp=%g fc=%g sat=%g",
				i, l.MinWaterContent, l.WiltingPoint, l.FieldCapacity, l.Saturation)
		}
		if l.Impermeability < 0 || l.Impermeability > 1 {
			return nil, fmt.Errorf("hydroterra: layer %d: impermeability must be in [0,1], got %g", i, l.Impermeability)
		}
	}
	return &Profile{Layers: layers}, nil
}

// N returns the number of layers in the profile.
func (p *Profile) N() int { return len(p.Layers) }
