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

// tanfunc is the sigmoid kernel used by EvapDemandModel's watrate
// (swpReduction) and shade-factor computations (spec.md §4.6).
// SoilWaterEngine does not use it: the relative soil-root conductance in
// HydraulicRedistribution is a clamped linear fraction of water content,
// not a tanfunc curve. It has no independent physical meaning
// outside of the (a,b,c,d) parameterization each caller supplies.
func tanfunc(x, a, b, c, d float64) float64 {
	return b + (a-b)*(0.5*(1+math.Tanh((x-c)*d)))
}

// svapor returns saturation vapor pressure in mmHg for temperature T in
// degrees Celsius, via the Clausius-Clapeyron form (spec.md §4.6).
func svapor(t float64) float64 {
	return 0.75 * math.Exp(math.Log(6.11)+5418.38*(1.0/273.15-1.0/(t+273.15)))
}
