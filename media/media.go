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

// Package media identifies and loads the image files that can be attached
// to the machine. Identification is by file extension, cross checked
// against the file size where the format dictates one.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/logger"
)

// sentinel error for media that cannot be identified or loaded.
const NotRecognised = "media: not a recognised image: %v"

// Type of media image.
type Type int

// List of media types. A plain .dsk file is assumed to be in DOS sector
// order, which is almost always right.
const (
	DiskDOSOrder Type = iota
	DiskProDOSOrder
	DiskNibble
	Cassette
)

func (t Type) String() string {
	switch t {
	case DiskDOSOrder:
		return "5.25 disk (DOS order)"
	case DiskProDOSOrder:
		return "5.25 disk (ProDOS order)"
	case DiskNibble:
		return "5.25 disk (nibble)"
	case Cassette:
		return "cassette audio"
	}
	return "unknown media type"
}

// expected file sizes for the sector ordered and nibble formats.
const (
	SectorImageSize = 143360
	NibbleImageSize = 232960
)

// Descriptor is a loaded media image.
type Descriptor struct {
	Filename string
	Type     Type
	Data     []byte
}

func (desc Descriptor) String() string {
	return fmt.Sprintf("%s [%s]", filepath.Base(desc.Filename), desc.Type)
}

// NewDescriptor loads and identifies the named image file.
func NewDescriptor(filename string) (*Descriptor, error) {
	var typ Type

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".dsk", ".do":
		typ = DiskDOSOrder
	case ".po":
		typ = DiskProDOSOrder
	case ".nib":
		typ = DiskNibble
	case ".mp3":
		typ = Cassette
	default:
		return nil, curated.Errorf(NotRecognised, fmt.Sprintf("unsupported file extension (%s)", filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(NotRecognised, err)
	}

	switch typ {
	case DiskDOSOrder, DiskProDOSOrder:
		if len(data) != SectorImageSize {
			return nil, curated.Errorf(NotRecognised, fmt.Sprintf("wrong size for a sector ordered disk (%d bytes)", len(data)))
		}
	case DiskNibble:
		if len(data) != NibbleImageSize {
			return nil, curated.Errorf(NotRecognised, fmt.Sprintf("wrong size for a nibble disk (%d bytes)", len(data)))
		}
	}

	desc := &Descriptor{
		Filename: filename,
		Type:     typ,
		Data:     data,
	}

	logger.Log("media", fmt.Sprintf("loaded %s", desc))

	return desc, nil
}
