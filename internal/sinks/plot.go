package sinks

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dylansiegel/lindemann-go/internal/lderrors"
)

// Plot writes a PDF scatter plot of the per-frame Lindemann stream to
// path, titled "Lindemann index per frame" with axes "Frames" and
// "Lindemann index", and returns the path written.
func Plot(path string, perFrame []float32) (string, error) {
	p := plot.New()
	p.Title.Text = "Lindemann index per frame"
	p.X.Label.Text = "Frames"
	p.Y.Label.Text = "Lindemann index"

	pts := make(plotter.XYs, len(perFrame))
	for i, v := range perFrame {
		pts[i].X = float64(i)
		pts[i].Y = float64(v)
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
	}
	scatter.GlyphStyle.Shape = plotter.CrossGlyph{}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("%w: %v", lderrors.ErrOutputWriteFailed, err)
	}
	return path, nil
}
