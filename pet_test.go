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

func TestTanfuncMidpoint(t *testing.T) {
	// At x=c the tanh term is zero, so tanfunc should return the midpoint
	// between a and b.
	have := tanfunc(5, 10, 0, 5, 1)
	want := 5.0
	if math.Abs(have-want) > 1e-9 {
		t.Errorf("tanfunc at midpoint = %g, want %g", have, want)
	}
}

func TestTanfuncLimits(t *testing.T) {
	a, b, c, d := 10.0, 0.0, 0.0, 1.0
	if have := tanfunc(1000, a, b, c, d); math.Abs(have-a) > 1e-6 {
		t.Errorf("tanfunc(+inf-ish) = %g, want ~%g", have, a)
	}
	if have := tanfunc(-1000, a, b, c, d); math.Abs(have-b) > 1e-6 {
		t.Errorf("tanfunc(-inf-ish) = %g, want ~%g", have, b)
	}
}

func TestSvaporIncreasesWithTemperature(t *testing.T) {
	lo := svapor(0)
	hi := svapor(30)
	if !(hi > lo) {
		t.Errorf("svapor(30)=%g should exceed svapor(0)=%g", hi, lo)
	}
}

func TestPotentialETAboveFloorForMidsummerDay(t *testing.T) {
	w := WeatherDay{
		TAirAvg:   25,
		Cloud:     0.2,
		Humidity:  0.4,
		Wind:      2,
		Latitude:  40,
		Elevation: 300,
		Albedo:    0.2,
	}
	pet := PotentialET(PETInputs{DayOfYear: 180, Weather: w})
	if pet <= petMinCmDay {
		t.Errorf("PotentialET = %g, want > floor %g for a warm, dry, low-cloud midsummer day", pet, petMinCmDay)
	}
}

func TestPotentialETRespectsFloor(t *testing.T) {
	w := WeatherDay{
		TAirAvg:   -10,
		Cloud:     1,
		Humidity:  1,
		Wind:      0,
		Latitude:  60,
		Elevation: 0,
		Albedo:    0.8,
	}
	pet := PotentialET(PETInputs{DayOfYear: 355, Weather: w})
	if pet < petMinCmDay {
		t.Errorf("PotentialET = %g, want >= floor %g", pet, petMinCmDay)
	}
}

func TestPotentialETIncreasesWithTemperature(t *testing.T) {
	base := WeatherDay{
		Cloud:     0.3,
		Humidity:  0.3,
		Wind:      2,
		Latitude:  35,
		Elevation: 200,
		Albedo:    0.2,
	}
	cool := base
	cool.TAirAvg = 10
	warm := base
	warm.TAirAvg = 30

	petCool := PotentialET(PETInputs{DayOfYear: 170, Weather: cool})
	petWarm := PotentialET(PETInputs{DayOfYear: 170, Weather: warm})
	if !(petWarm > petCool) {
		t.Errorf("PotentialET(30C)=%g should exceed PotentialET(10C)=%g", petWarm, petCool)
	}
}
