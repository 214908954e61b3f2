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

import "testing"

func TestInterceptZeroCoverOrPpt(t *testing.T) {
	shape := InterceptionShape{A: 1, B: 1, C: 1, D: 1}
	if amt, left := intercept(shape, 0, 5, 1, 10); amt != 0 || left != 5 {
		t.Errorf("intercept with cov=0 = (%g,%g), want (0,5)", amt, left)
	}
	if amt, left := intercept(shape, 1, 0, 1, 10); amt != 0 || left != 0 {
		t.Errorf("intercept with pptleft=0 = (%g,%g), want (0,0)", amt, left)
	}
}

func TestInterceptClampsToMaxPool(t *testing.T) {
	shape := InterceptionShape{A: 100, B: 0, C: 0, D: 0}
	amt, left := intercept(shape, 1, 10, 1, 0.5)
	if amt != 0.5 {
		t.Errorf("intercept amount = %g, want 0.5 (clamped to maxPool)", amt)
	}
	if left != 9.5 {
		t.Errorf("intercept pptleft = %g, want 9.5", left)
	}
}

func TestInterceptNeverExceedsPptleft(t *testing.T) {
	shape := InterceptionShape{A: 100, B: 0, C: 0, D: 0}
	amt, left := intercept(shape, 1, 0.2, 1, 50)
	if amt > 0.2 {
		t.Errorf("intercept amount %g exceeds pptleft 0.2", amt)
	}
	if left < 0 {
		t.Errorf("pptleft went negative: %g", left)
	}
}

func TestRunInterceptionMonotonicPptleft(t *testing.T) {
	var p InterceptionParams
	for pft := 0; pft < NumPFTs; pft++ {
		p.Canopy[pft] = InterceptionShape{A: 0.05, B: 0.01, C: 0.01, D: 0.01}
		p.MaxCanopyPool[pft] = 0.1
	}
	p.Litter = InterceptionShape{A: 0.02, B: 0.005, C: 0.005, D: 0.005}
	p.MaxLitterPool = 0.05

	cover := [NumPFTs]float64{0.3, 0.2, 0.4, 0.1}
	res := RunInterception(p, 2.0, cover, 50, 1)

	total := res.Litter
	for _, c := range res.Canopy {
		total += c
	}
	if res.Throughfall > 2.0 {
		t.Errorf("throughfall %g exceeds ppt 2.0", res.Throughfall)
	}
	if total > 2.0+1e-9 {
		t.Errorf("total intercepted %g exceeds ppt 2.0", total)
	}
	if res.Throughfall < 0 {
		t.Errorf("throughfall went negative: %g", res.Throughfall)
	}
}
