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

// InterceptionShape is the four-parameter (a,b,c,d) shape used by
// InterceptionLayer's linear-in-cover, linear-in-pptleft model (spec.md
// §4.1).
type InterceptionShape struct {
	A, B, C, D float64
}

// InterceptionParams is the per-site, per-PFT configuration InterceptionLayer
// needs: a canopy shape and pool cap per PFT (vegcov-driven for grass,
// shrub, forb; LAI-driven for tree), and one litter shape/pool cap.
type InterceptionParams struct {
	Canopy        [NumPFTs]InterceptionShape
	MaxCanopyPool [NumPFTs]float64 // MAX_WINTSTCR (grass/shrub/forb) or MAX_WINTFOR (tree)

	Litter       InterceptionShape
	MaxLitterPool float64 // MAX_WINTLIT
}

// intercept implements the shared model: scale*((a+b*cov)+(c+d*cov)*pptleft),
// clamped to [0, min(pptleft, maxPool)]. Returns the intercepted amount and
// the updated pptleft.
func intercept(shape InterceptionShape, cov, pptleft, snowScale, maxPool float64) (intercepted, pptleftOut float64) {
	if cov == 0 || pptleft <= 0 {
		return 0, pptleft
	}
	raw := snowScale * ((shape.A + shape.B*cov) + (shape.C+shape.D*cov)*pptleft)
	limit := pptleft
	if maxPool < limit {
		limit = maxPool
	}
	if raw < 0 {
		raw = 0
	}
	if raw > limit {
		raw = limit
	}
	left := pptleft - raw
	if left < 0 {
		left = 0
	}
	return raw, left
}

// InterceptCanopy computes one PFT's canopy interception for the day.
// cov is vegcov for grass/shrub/forb or LAI for tree. pptleft is the
// throughfall remaining before this PFT's canopy is applied -- canopy
// pools draw from pre-canopy precipitation (spec.md §4.1).
func InterceptCanopy(p InterceptionParams, pft PFT, cov, pptleft, snowScale float64) (intercepted, pptleftOut float64) {
	return intercept(p.Canopy[pft], cov, pptleft, snowScale, p.MaxCanopyPool[pft])
}

// InterceptLitter computes litter interception. pptleft here must already
// reflect all canopy interception applied upstream (spec.md §4.1: "Litter
// uses pptleft (post-canopy) as its input").
func InterceptLitter(p InterceptionParams, litterBiomass, pptleft, snowScale float64) (intercepted, pptleftOut float64) {
	return intercept(p.Litter, litterBiomass, pptleft, snowScale, p.MaxLitterPool)
}

// InterceptionResult is the per-day output of the full canopy+litter
// interception pipeline, feeding directly into DailyFluxes.
type InterceptionResult struct {
	Canopy       [NumPFTs]float64
	Litter       float64
	Throughfall  float64 // pptleft after all interception, reaching the soil surface
}

// RunInterception applies canopy interception for every PFT with nonzero
// cover, in PFT order, followed by litter interception, starting from
// today's total precipitation (rain + snowmelt already routed to the
// surface is the caller's concern; ppt here is liquid water available to
// intercept). cover holds vegcov for grass/shrub/forb and LAI for tree.
func RunInterception(p InterceptionParams, ppt float64, cover [NumPFTs]float64, litterBiomass, snowScale float64) InterceptionResult {
	var res InterceptionResult
	pptleft := ppt
	for pft := 0; pft < NumPFTs; pft++ {
		amt, left := InterceptCanopy(p, PFT(pft), cover[pft], pptleft, snowScale)
		res.Canopy[pft] = amt
		pptleft = left
	}
	litAmt, left := InterceptLitter(p, litterBiomass, pptleft, snowScale)
	res.Litter = litAmt
	pptleft = left
	res.Throughfall = pptleft
	return res
}
