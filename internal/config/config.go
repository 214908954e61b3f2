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

// Package config loads a site's soil profile, vegetation, grid, and
// weather-generator configuration from a TOML file, mirroring the teacher's
// inmaputil config-loading style: a dedicated *viper.Viper read as TOML and
// unmarshaled into a plain Go struct, with environment-variable expansion
// of the configuration file path. No cobra flags are bound to the viper
// instance.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"

	"github.com/ctessum-labs/hydroterra"
	"github.com/ctessum-labs/hydroterra/weather/markov"
)

// LayerConfig is the TOML representation of one hydroterra.Layer.
type LayerConfig struct {
	WidthCM         float64    `toml:"width_cm"`
	BulkDensity     float64    `toml:"bulk_density"`
	GravelFrac      float64    `toml:"gravel_frac"`
	FieldCapacityCM float64    `toml:"field_capacity_cm"`
	WiltingPointCM  float64    `toml:"wilting_point_cm"`
	MinWaterCM      float64    `toml:"min_water_cm"`
	SaturationCM    float64    `toml:"saturation_cm"`
	Impermeability  float64    `toml:"impermeability"`
	EvapCoeff       [4]float64 `toml:"evap_coeff"`   // grass, shrub, tree, forb
	TranspCoeff     [4]float64 `toml:"transp_coeff"` // grass, shrub, tree, forb
	SWPCritical     [4]float64 `toml:"swp_critical"`
	RootFrac        [4]float64 `toml:"root_frac"`
}

// ToLayer converts a LayerConfig into a hydroterra.Layer.
func (c LayerConfig) ToLayer() hydroterra.Layer {
	return hydroterra.Layer{
		Width:           c.WidthCM,
		BulkDensity:     c.BulkDensity,
		GravelFrac:      c.GravelFrac,
		FieldCapacity:   c.FieldCapacityCM,
		WiltingPoint:    c.WiltingPointCM,
		MinWaterContent: c.MinWaterCM,
		Saturation:      c.SaturationCM,
		Impermeability:  c.Impermeability,
		EvapCoeff:       c.EvapCoeff,
		TranspCoeff:     c.TranspCoeff,
		SWPCritical:     c.SWPCritical,
		RootFrac:        c.RootFrac,
	}
}

// GridConfig is the TOML representation of the temperature regression
// grid's geometry (spec.md §3 "Temperature grid").
type GridConfig struct {
	DeltaXCM   float64 `toml:"delta_x_cm"`
	MaxDepthCM float64 `toml:"max_depth_cm"`
	TConstC    float64 `toml:"t_const_c"`
}

// Site is the top-level configuration loaded from a site's TOML file: its
// soil profile, temperature-grid geometry, and the per-PFT/per-layer
// engine parameters RunDay's Params needs.
type Site struct {
	Name   string        `toml:"name"`
	Layers []LayerConfig `toml:"layer"`
	Grid   GridConfig    `toml:"grid"`

	SoilWater struct {
		SdrainPar       float64 `toml:"sdrain_par"`
		SdrainDpth      float64 `toml:"sdrain_dpth"`
		KsatRelFrozen   float64 `toml:"ksat_rel_frozen"`
		KunsatRelFrozen float64 `toml:"kunsat_rel_frozen"`
		MaxCondRoot     float64 `toml:"max_cond_root"`
		SWPWiltingPoint float64 `toml:"swp_wilting_point"`
	} `toml:"soilwater"`

	SoilTemp struct {
		CsParam1 float64 `toml:"cs_param1"`
		CsParam2 float64 `toml:"cs_param2"`
		ShParam  float64 `toml:"sh_param"`
	} `toml:"soiltemp"`

	Evap struct {
		Lambda       [4]float64 `toml:"lambda"`
		EsLimitAGB   float64    `toml:"es_limit_agb"`
		ShadeDeadMax float64    `toml:"shade_dead_max"`
		ShadeScale   float64    `toml:"shade_scale"`
		SWPInflec    float64    `toml:"swp_inflec"`
		SWPRange     float64    `toml:"swp_range"`
		SWPShape     float64    `toml:"swp_shape"`
	} `toml:"evap"`

	Interception struct {
		CanopyA       [4]float64 `toml:"canopy_a"`
		CanopyB       [4]float64 `toml:"canopy_b"`
		CanopyC       [4]float64 `toml:"canopy_c"`
		CanopyD       [4]float64 `toml:"canopy_d"`
		MaxCanopyPool [4]float64 `toml:"max_canopy_pool"`
		LitterA       float64    `toml:"litter_a"`
		LitterB       float64    `toml:"litter_b"`
		LitterC       float64    `toml:"litter_c"`
		LitterD       float64    `toml:"litter_d"`
		MaxLitterPool float64    `toml:"max_litter_pool"`
	} `toml:"interception"`

	// InitialTsC is the initial per-layer soil temperature (°C) used to
	// seed the regression grid at site construction.
	InitialTsC []float64 `toml:"initial_ts_c"`

	Markov struct {
		PWetGivenWet []float64 `toml:"p_wet_given_wet"`
		PWetGivenDry []float64 `toml:"p_wet_given_dry"`
		MeanPrecip   []float64 `toml:"mean_precip_cm"`
		SDPrecip     []float64 `toml:"sd_precip_cm"`

		MeanTMaxC []float64 `toml:"mean_tmax_c"`
		MeanTMinC []float64 `toml:"mean_tmin_c"`
		VarTMax   []float64 `toml:"var_tmax"`
		VarTMin   []float64 `toml:"var_tmin"`
		CovTemp   []float64 `toml:"cov_temp"`
		CfMaxWet  []float64 `toml:"cf_max_wet"`
		CfMinWet  []float64 `toml:"cf_min_wet"`
		CfMaxDry  []float64 `toml:"cf_max_dry"`
		CfMinDry  []float64 `toml:"cf_min_dry"`
	} `toml:"markov"`
}

// Load reads a TOML site configuration from path (expanding any
// environment variables in the path itself, matching the teacher's
// os.ExpandEnv convention in inmaputil/config.go) via a dedicated viper
// instance, and unmarshals it into a Site.
func Load(path string) (*Site, error) {
	path = os.ExpandEnv(path)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var s Site
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unmarshaling %s: %w", path, err)
	}
	return &s, nil
}

// LoadFile is a lower-level loader that decodes TOML directly with
// BurntSushi/toml, without viper and without expanding environment
// variables in path. The CLI does not call it; it loads through Load.
func LoadFile(path string) (*Site, error) {
	var s Site
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return &s, nil
}

// Profile builds a hydroterra.Profile from the site's layer configuration.
func (s *Site) Profile() (*hydroterra.Profile, error) {
	layers := make([]hydroterra.Layer, len(s.Layers))
	for i, l := range s.Layers {
		layers[i] = l.ToLayer()
	}
	return hydroterra.NewProfile(layers)
}

// TemperatureGrid builds the regression grid for p using the site's grid
// configuration, defaulting DeltaX/MaxDepth to the package defaults when
// unset.
func (s *Site) TemperatureGrid(p *hydroterra.Profile) (*hydroterra.TemperatureGrid, error) {
	deltaX := s.Grid.DeltaXCM
	if deltaX == 0 {
		deltaX = hydroterra.DefaultDeltaX
	}
	maxDepth := s.Grid.MaxDepthCM
	if maxDepth == 0 {
		maxDepth = hydroterra.DefaultMaxDepth
	}
	if len(s.InitialTsC) != p.N() {
		return nil, fmt.Errorf("config: initial_ts_c has %d entries, profile has %d layers", len(s.InitialTsC), p.N())
	}
	return hydroterra.NewTemperatureGrid(p, deltaX, maxDepth, s.Grid.TConstC, s.InitialTsC)
}

// SoilWaterParams converts the site's soilwater table into engine params.
func (s *Site) SoilWaterParams() hydroterra.SoilWaterParams {
	sw := s.SoilWater
	return hydroterra.SoilWaterParams{
		SdrainPar:       sw.SdrainPar,
		SdrainDpth:      sw.SdrainDpth,
		KsatRelFrozen:   sw.KsatRelFrozen,
		KunsatRelFrozen: sw.KunsatRelFrozen,
		MaxCondRoot:     sw.MaxCondRoot,
		SWPWiltingPoint: sw.SWPWiltingPoint,
	}
}

// SoilTemperatureParams converts the site's soiltemp table into engine
// params.
func (s *Site) SoilTemperatureParams() hydroterra.SoilTemperatureParams {
	return hydroterra.SoilTemperatureParams{
		CsParam1: s.SoilTemp.CsParam1,
		CsParam2: s.SoilTemp.CsParam2,
		ShParam:  s.SoilTemp.ShParam,
	}
}

// EvapDemandParams converts the site's evap table into engine params.
func (s *Site) EvapDemandParams() hydroterra.EvapDemandParams {
	e := s.Evap
	return hydroterra.EvapDemandParams{
		Lambda:       e.Lambda,
		EsLimitAGB:   e.EsLimitAGB,
		ShadeDeadMax: e.ShadeDeadMax,
		ShadeScale:   e.ShadeScale,
		SWPInflec:    e.SWPInflec,
		SWPRange:     e.SWPRange,
		SWPShape:     e.SWPShape,
	}
}

// InterceptionParams converts the site's interception table into engine
// params.
func (s *Site) InterceptionParams() hydroterra.InterceptionParams {
	ic := s.Interception
	var p hydroterra.InterceptionParams
	for pft := 0; pft < 4; pft++ {
		p.Canopy[pft] = hydroterra.InterceptionShape{
			A: ic.CanopyA[pft], B: ic.CanopyB[pft], C: ic.CanopyC[pft], D: ic.CanopyD[pft],
		}
		p.MaxCanopyPool[pft] = ic.MaxCanopyPool[pft]
	}
	p.Litter = hydroterra.InterceptionShape{A: ic.LitterA, B: ic.LitterB, C: ic.LitterC, D: ic.LitterD}
	p.MaxLitterPool = ic.MaxLitterPool
	return p
}

// MarkovState converts the site's markov table into a weather-generator
// State. The caller is still responsible for calling its Validate method;
// this conversion does no validation of its own, matching viper's own
// unmarshal-then-validate convention used elsewhere in the teacher's
// config loading.
func (s *Site) MarkovState() *markov.State {
	m := s.Markov
	return &markov.State{
		PWetGivenWet: m.PWetGivenWet,
		PWetGivenDry: m.PWetGivenDry,
		MeanPrecip:   m.MeanPrecip,
		SDPrecip:     m.SDPrecip,
		MeanTMax:     m.MeanTMaxC,
		MeanTMin:     m.MeanTMinC,
		VarTMax:      m.VarTMax,
		VarTMin:      m.VarTMin,
		CovTemp:      m.CovTemp,
		CfMaxWet:     m.CfMaxWet,
		CfMinWet:     m.CfMinWet,
		CfMaxDry:     m.CfMaxDry,
		CfMinDry:     m.CfMinDry,
	}
}
