// This file is part of GopherApple.
//
// GopherApple is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherApple is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherApple.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware"
	"github.com/gopherapple/gopherapple/logger"
)

// DumpMachineGraph writes the machine's object graph to filename in
// Graphviz dot format. Useful for eyeballing what the emulation is holding
// on to after a run.
func DumpMachineGraph(ap *hardware.Apple2, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer f.Close()

	memviz.Map(f, ap)

	logger.Logf("performance", "machine graph written to %s", filename)

	return nil
}
