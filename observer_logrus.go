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

import "github.com/sirupsen/logrus"

// LogrusObserver logs each RunDay component's scalars as a structured
// logrus entry, one per (day, component) pair, grounded on the teacher's
// own per-iteration status line (run.go's Log DomainManipulator) but
// structured rather than a plain io.Writer line.
type LogrusObserver struct {
	Logger *logrus.Logger
	Site   string
}

// Observe implements Observer.
func (o LogrusObserver) Observe(day int, component string, scalars map[string]float64) {
	logger := o.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	fields := logrus.Fields{"day": day, "component": component}
	if o.Site != "" {
		fields["site"] = o.Site
	}
	for k, v := range scalars {
		fields[k] = v
	}
	logger.WithFields(fields).Debug("hydroterra day step")
}
