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

// Package hydroterra is a daily-timestep, point-scale soil-water and
// soil-temperature simulator for terrestrial ecosystems. It resolves the
// daily vertical redistribution of water and heat through a stratified
// soil profile supporting up to four co-existing plant functional types,
// driven by precipitation, evaporative demand, snow dynamics, root uptake,
// and freezing.
package hydroterra

// Version is the current version of hydroterra.
const Version = "0.1.0"
