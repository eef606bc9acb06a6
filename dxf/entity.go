package dxf

import "github.com/kapilmoond/dxfprint/api"

// Common carries the attributes every entity variant shares. ColorIndex
// is nil when the source record has no explicit color.
type Common struct {
	Layer      string
	ColorIndex *int
}

// Attributes implements Entity for every variant that embeds Common.
func (c Common) Attributes() Common { return c }

// Entity is the normalized, fully-resolved form of one drawable DXF
// record. Every geometry field on a variant is a concrete coordinate;
// nothing downstream of the Normalizer handles ambiguous shapes.
type Entity interface {
	Attributes() Common
}

type Line struct {
	Common
	Start api.Point
	End   api.Point
}

type Polyline struct {
	Common
	Vertices []api.Point
	Closed   bool
}

type Circle struct {
	Common
	Center api.Point
	Radius float64
}

// Arc angles are in degrees, counter-clockwise positive.
type Arc struct {
	Common
	Center     api.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

type Text struct {
	Common
	Position api.Point
	Content  string
	Height   float64
}

// Dimension keeps MiddleOfText as a pointer: the leader segment and
// label placement fall back to the defining point when it is absent.
type Dimension struct {
	Common
	DefiningPoint api.Point
	MiddleOfText  *api.Point
	Label         string
}

type Edge struct {
	Start api.Point
	End   api.Point
}

type Hatch struct {
	Common
	Edges []Edge
}
