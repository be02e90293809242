package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/bedlam/internal/model"
)

// ExportSVG writes the isometric drawing of a solution to path.
func ExportSVG(path string, result model.SolveResult) error {
	if !result.Found {
		return fmt.Errorf("no solution to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}

	w := bufio.NewWriter(f)
	_, shapes := pieceShapes(result)
	if err := WriteSVG(w, shapes); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	return f.Close()
}

// WriteSVG renders the shapes side by side, each inside a dashed outline of
// the cube and numbered from zero.
func WriteSVG(w io.Writer, shapes []model.Shape) error {
	width, height := layoutSize(len(shapes))
	sw := &svgWriter{w: w}

	sw.printf("<svg width='%.0f' height='%.0f' viewBox='0 0 %.0f %.0f' xmlns='http://www.w3.org/2000/svg' xmlns:xlink='http://www.w3.org/1999/xlink'>\n",
		width/5, height/5, width, height)
	sw.printf("<defs>\n")
	sw.printf("<polygon id='panel' points='%s'/>\n", svgPoints(facePanel))
	sw.printf("<g id='box'>\n")
	for _, angle := range faceAngles {
		sw.printf("<use xlink:href='#panel' transform='rotate(%.0f)'/>\n", angle)
	}
	sw.printf("</g>\n")

	silhouette, backEdges := cubeOutline()
	sw.printf("<g id='cube' style='stroke-dasharray:4,12;'>\n")
	sw.printf("<polygon points='%s'/>\n", svgPoints(silhouette))
	for _, e := range backEdges {
		sw.printf("<line x1='%.2f' y1='%.2f' x2='%.2f' y2='%.2f'/>\n", e[0].X, e[0].Y, e[1].X, e[1].Y)
	}
	sw.printf("</g>\n")

	for i, shape := range shapes {
		col := colorFor(i)
		sw.printf("<g id='piece%d' style='fill:%s;'>\n", i, col.Hex())
		for _, b := range drawOrder(shape) {
			o := blockOrigin(b)
			sw.printf("<use xlink:href='#box' transform='translate(%.2f,%.2f)'/>\n", o.X, o.Y)
		}
		sw.printf("</g>\n")
	}
	sw.printf("</defs>\n")

	sw.printf("<g style='fill:none;stroke:black;stroke-width:3;'>\n")
	for i := range shapes {
		o := layoutOrigin(i)
		sw.printf("<use xlink:href='#cube' x='%.0f' y='%.0f'/>\n", o.X, o.Y)
		sw.printf("<use xlink:href='#piece%d' x='%.0f' y='%.0f'/>\n", i, o.X, o.Y)
		sw.printf("<text x='%.0f' y='%.0f' font-size='60' style='fill:black;stroke:none;'>%d</text>\n", o.X, o.Y+250, i)
	}
	sw.printf("</g>\n")
	sw.printf("</svg>\n")
	return sw.err
}

func svgPoints(points []point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// svgWriter keeps the first write error so rendering code can stay linear.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}
