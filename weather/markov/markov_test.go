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

package markov

import (
	"errors"
	"math/rand"
	"testing"
)

func uniformState(days, weeks int) *State {
	s := &State{
		PWetGivenWet: make([]float64, days),
		PWetGivenDry: make([]float64, days),
		MeanPrecip:   make([]float64, days),
		SDPrecip:     make([]float64, days),
		MeanTMax:     make([]float64, weeks),
		MeanTMin:     make([]float64, weeks),
		VarTMax:      make([]float64, weeks),
		VarTMin:      make([]float64, weeks),
		CovTemp:      make([]float64, weeks),
		CfMaxWet:     make([]float64, weeks),
		CfMinWet:     make([]float64, weeks),
		CfMaxDry:     make([]float64, weeks),
		CfMinDry:     make([]float64, weeks),
	}
	for w := 0; w < weeks; w++ {
		s.MeanTMax[w] = 20
		s.MeanTMin[w] = 5
		s.VarTMax[w] = 4
		s.VarTMin[w] = 2
		s.CovTemp[w] = 0.5
	}
	return s
}

func TestDoyToWeekRange(t *testing.T) {
	for doy := 1; doy <= 366; doy++ {
		w := DoyToWeek(doy)
		if w < 0 || w > 51 {
			t.Fatalf("DoyToWeek(%d) = %d, out of [0,51]", doy, w)
		}
	}
}

func TestValidateCatchesOutOfRangeProbability(t *testing.T) {
	s := uniformState(5, 52)
	s.PWetGivenWet[0] = 1.5
	if err := s.Validate(); err == nil {
		t.Error("Validate accepted p_ww > 1")
	}
}

func TestValidateCatchesDegenerateCovariance(t *testing.T) {
	s := uniformState(5, 52)
	s.CovTemp[0] = 100 // far exceeds sqrt(varMax*varMin)
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate accepted a degenerate covariance")
	}
	if !errors.Is(err, ErrDegenerateCovariance) {
		t.Errorf("Validate error = %v, want wrapping ErrDegenerateCovariance", err)
	}
}

func TestValidateAcceptsWellFormedState(t *testing.T) {
	s := uniformState(365, 52)
	if err := s.Validate(); err != nil {
		t.Errorf("Validate rejected a well-formed state: %v", err)
	}
}

func TestGenerateWetWetChainNeverDries(t *testing.T) {
	s := uniformState(365, 52)
	for d := range s.PWetGivenWet {
		s.PWetGivenWet[d] = 1
		s.PWetGivenDry[d] = 0
		s.MeanPrecip[d] = 1
		s.SDPrecip[d] = 0
	}
	rng := rand.New(rand.NewSource(1))
	yesterdayRain := 1.0 // start wet so day 1 uses p_ww
	for doy := 1; doy <= 30; doy++ {
		rain, tmax, tmin, err := Generate(rng, s, doy, yesterdayRain)
		if err != nil {
			t.Fatalf("Generate day %d: %v", doy, err)
		}
		if rain != 1 {
			t.Errorf("day %d: rain = %g, want 1 (wet-wet chain with sd=0)", doy, rain)
		}
		if tmin > tmax {
			t.Errorf("day %d: tmin %g > tmax %g", doy, tmin, tmax)
		}
		yesterdayRain = rain
	}
}

func TestGenerateTminNeverExceedsTmax(t *testing.T) {
	s := uniformState(365, 52)
	for d := range s.MeanPrecip {
		s.MeanPrecip[d] = 0.5
		s.SDPrecip[d] = 0.3
		s.PWetGivenWet[d] = 0.6
		s.PWetGivenDry[d] = 0.3
	}
	rng := rand.New(rand.NewSource(42))
	var yesterdayRain float64
	for doy := 1; doy <= 200; doy++ {
		_, tmax, tmin, err := Generate(rng, s, doy, yesterdayRain)
		if err != nil {
			t.Fatalf("Generate day %d: %v", doy, err)
		}
		if tmin > tmax {
			t.Errorf("day %d: tmin %g > tmax %g", doy, tmin, tmax)
		}
	}
}
