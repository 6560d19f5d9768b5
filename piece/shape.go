package piece

import (
	"image/color"

	"github.com/plus3/tetrad/grid"
)

//go:generate go tool stringer -type=Shape,Zone -output=enum_string.go

// Shape identifies one of the seven tetromino shapes.
type Shape uint8

const (
	I Shape = iota
	T
	O
	Z
	L
	S
	J
)

// NumShapes is the number of distinct shapes.
const NumShapes = 7

// Shapes lists every shape in table order.
var Shapes = [NumShapes]Shape{I, T, O, Z, L, S, J}

// Zone names the region of the board a piece currently lives in.
type Zone uint8

const (
	Preview Zone = iota
	Playfield
	Hold
)

// Rotation is the orientation of a piece in degrees, clockwise from North.
type Rotation int

const (
	North Rotation = 0
	East  Rotation = 90
	South Rotation = 180
	West  Rotation = 270
)

// Next returns the orientation after one clockwise quarter turn.
func (r Rotation) Next() Rotation {
	return (r + 90) % 360
}

// Fixed anchors on the board.
var (
	SpawnCenter = grid.Location{Row: 1, Col: 4}
	HoldAnchor  = grid.Location{Row: 16, Col: 13}
)

// offsets holds the four cells of each shape relative to its pivot.
// Index 0 is always the pivot itself.
var offsets = [NumShapes][4]grid.Location{
	I: {{Row: 0, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	T: {{Row: 0, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: -1, Col: 0}},
	O: {{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}},
	Z: {{Row: 0, Col: 0}, {Row: -1, Col: -1}, {Row: 0, Col: 1}, {Row: -1, Col: 0}},
	L: {{Row: 0, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: -1, Col: -1}},
	S: {{Row: 0, Col: 0}, {Row: 0, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}},
	J: {{Row: 0, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}, {Row: -1, Col: 1}},
}

// Offsets returns the pivot-relative cells of a shape.
func Offsets(s Shape) [4]grid.Location {
	return offsets[s]
}

const pieceAlpha = 180

var baseColors = [NumShapes]color.NRGBA{
	I: {R: 0, G: 255, B: 255, A: pieceAlpha},
	T: {R: 255, G: 0, B: 255, A: pieceAlpha},
	O: {R: 255, G: 255, B: 0, A: pieceAlpha},
	Z: {R: 255, G: 0, B: 0, A: pieceAlpha},
	L: {R: 0, G: 0, B: 255, A: pieceAlpha},
	S: {R: 0, G: 255, B: 0, A: pieceAlpha},
	J: {R: 255, G: 200, B: 0, A: pieceAlpha},
}

// ColorOf returns the translucent base color of a shape.
func ColorOf(s Shape) color.NRGBA {
	return baseColors[s]
}

// Render colors for non-piece occupants.
var (
	ShadowColor = color.NRGBA{R: 120, G: 120, B: 120, A: 120}
	TrailColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 120}
	FlashColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	WallColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// WallKicks is the ordered list of (row, col) offsets tried against the
// rotated cells when an in-place rotation is blocked. The last entry repeats
// the one before it.
var WallKicks = [...]grid.Location{
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
	{Row: 0, Col: -2},
	{Row: 0, Col: 2},
	{Row: 2, Col: -1},
	{Row: 2, Col: 1},
	{Row: 1, Col: -1},
	{Row: 1, Col: -1},
}
