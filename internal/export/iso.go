// Package export renders solved puzzles to files: isometric drawings (SVG
// and PDF), printable piece cards with QR codes, Excel workbooks and 3D DXF
// wireframes.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/bedlam/internal/model"
)

// Isometric drawing units: a block is 100 units tall and its faces lean at
// 30 degrees, so one step along X or Y moves 86.6 units across and 50 up.
const (
	isoDX     = 86.60254
	isoDY     = 50.0
	isoDZ     = 100.0
	isoCellW  = 800.0 // Layout pitch between pieces
	isoCellH  = 1000.0
	isoPerRow = 5
)

// point is a position on the drawing in isometric units, Y pointing down.
type point struct {
	X, Y float64
}

// project maps a cube-space corner to the drawing. The block (x, y, z) is
// drawn around the projection of its corner (x, y, z+1), the corner closest
// to the viewer.
func project(x, y, z float64) point {
	return point{
		X: isoDX * (x - y),
		Y: -isoDY*(x+y) - isoDZ*(z-1),
	}
}

// blockOrigin returns the drawing offset of a block.
func blockOrigin(b model.Block) point {
	return project(float64(b.X), float64(b.Y), float64(b.Z)+1)
}

// rotate turns p about the origin by deg degrees (clockwise on a Y-down canvas).
func (p point) rotate(deg float64) point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

func (p point) add(o point) point {
	return point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p point) scale(s float64) point {
	return point{X: p.X * s, Y: p.Y * s}
}

// facePanel is one rhombus of a block. Turned by -120, 0 and 120 degrees it
// gives the three visible faces meeting at the block origin.
var facePanel = []point{{0, 0}, {0, isoDZ}, {isoDX, isoDY}, {isoDX, -isoDY}}

var faceAngles = []float64{-120, 0, 120}

// blockFaces returns the three visible faces of a block as polygons.
func blockFaces(b model.Block) [][]point {
	origin := blockOrigin(b)
	faces := make([][]point, len(faceAngles))
	for i, angle := range faceAngles {
		poly := make([]point, len(facePanel))
		for j, p := range facePanel {
			poly[j] = p.rotate(angle).add(origin)
		}
		faces[i] = poly
	}
	return faces
}

// drawOrder sorts blocks back to front: far X first, then far Y, then low Z.
func drawOrder(shape model.Shape) model.Shape {
	sorted := make(model.Shape, len(shape))
	copy(sorted, shape)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.X != b.X {
			return a.X > b.X
		}
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.Z < b.Z
	})
	return sorted
}

// cubeOutline returns the silhouette of the whole cube and the three back
// edges meeting at its far bottom corner.
func cubeOutline() (silhouette []point, backEdges [][2]point) {
	n := float64(model.Side)
	silhouette = []point{
		project(0, 0, 0),
		project(n, 0, 0),
		project(n, 0, n),
		project(n, n, n),
		project(0, n, n),
		project(0, n, 0),
	}
	far := project(n, n, 0)
	backEdges = [][2]point{
		{far, project(0, n, 0)},
		{far, project(n, 0, 0)},
		{far, project(n, n, n)},
	}
	return silhouette, backEdges
}

// layoutOrigin returns where the i-th piece of a solution is drawn.
func layoutOrigin(i int) point {
	return point{
		X: isoCellW + float64(i%isoPerRow)*isoCellW,
		Y: isoCellH + float64(i/isoPerRow)*isoCellH,
	}
}

// layoutSize returns the drawing size needed for n pieces.
func layoutSize(n int) (w, h float64) {
	rows := (n + isoPerRow - 1) / isoPerRow
	if rows < 1 {
		rows = 1
	}
	return float64(isoPerRow+1) * isoCellW, float64(rows)*isoCellH + isoCellH/2
}

// pieceColor is an RGB colour used to tell pieces apart.
type pieceColor struct {
	R, G, B int
}

// pieceColors is cycled through by piece index.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
	{R: 233, G: 30, B: 99},  // pink
	{R: 63, G: 81, B: 181},  // indigo
	{R: 139, G: 195, B: 74}, // light green
	{R: 96, G: 125, B: 139}, // blue grey
	{R: 255, G: 193, B: 7},  // amber
}

func colorFor(i int) pieceColor {
	return pieceColors[i%len(pieceColors)]
}

// shade darkens a colour by factor f in [0, 1].
func (c pieceColor) shade(f float64) pieceColor {
	return pieceColor{
		R: int(float64(c.R) * f),
		G: int(float64(c.G) * f),
		B: int(float64(c.B) * f),
	}
}

// Hex returns the colour as #rrggbb.
func (c pieceColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// faceShades darken the three visible faces differently so blocks read as solids.
var faceShades = []float64{0.75, 0.9, 1.0}

// pieceShapes decodes the placements of a result in catalogue order.
func pieceShapes(result model.SolveResult) ([]model.Placement, []model.Shape) {
	placements := result.ByPiece()
	shapes := make([]model.Shape, len(placements))
	for i, p := range placements {
		shapes[i] = p.Blocks()
	}
	return placements, shapes
}
