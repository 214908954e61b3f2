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

// PFT indexes one of the four plant functional types this model resolves.
type PFT int

// The four plant functional types, in the fixed order used throughout the
// per-layer coefficient arrays.
const (
	Grass PFT = iota
	Shrub
	Tree
	Forb
	numPFTs
)

// NumPFTs is the number of plant functional types resolved by the model.
const NumPFTs = int(numPFTs)

func (p PFT) String() string {
	switch p {
	case Grass:
		return "grass"
	case Shrub:
		return "shrub"
	case Tree:
		return "tree"
	case Forb:
		return "forb"
	default:
		return "unknown"
	}
}
