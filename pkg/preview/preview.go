// Package preview draws the labelled boxes of dataset samples onto their images,
// so that a human can eyeball a dataset before spending GPU hours on it.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cyclopcam/darknetds/pkg/dataset"
	"github.com/cyclopcam/darknetds/pkg/yolo"
	"github.com/cyclopcam/logs"
	"github.com/fogleman/gg"
)

// DefaultLimit is the number of samples rendered when no limit is given
const DefaultLimit = 16

var palette = []color.RGBA{
	{230, 25, 75, 255},
	{60, 180, 75, 255},
	{0, 130, 200, 255},
	{245, 130, 48, 255},
	{145, 30, 180, 255},
	{70, 240, 240, 255},
	{240, 50, 230, 255},
	{210, 245, 60, 255},
}

// ClassColor returns a stable color for a class index
func ClassColor(class int) color.RGBA {
	return palette[class%len(palette)]
}

// Renderer writes <Dir>/<id>.png for the first Limit samples it is given
type Renderer struct {
	Log        logs.Log
	Dir        string
	ClassNames []string
	Limit      int
	rendered   int
}

func NewRenderer(log logs.Log, dir string, classNames []string, limit int) (*Renderer, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("Failed to create preview directory '%v': %w", dir, err)
	}
	return &Renderer{
		Log:        log,
		Dir:        dir,
		ClassNames: classNames,
		Limit:      limit,
	}, nil
}

// NumRendered is the number of preview images written so far
func (r *Renderer) NumRendered() int {
	return r.rendered
}

// AddSample satisfies dataset.SampleObserver.
// Images that can't be decoded are skipped with a warning.
func (r *Renderer) AddSample(s *dataset.Sample) error {
	if r.rendered >= r.Limit || s.Annotation == nil {
		return nil
	}
	img, err := gg.LoadImage(s.ImageDst)
	if err != nil {
		r.Log.Warnf("Preview of sample %v skipped. Failed to decode %v: %v", s.ID, s.ImageSrc, err)
		return nil
	}
	out := filepath.Join(r.Dir, strconv.Itoa(s.ID)+".png")
	if err := gg.SavePNG(out, Draw(img, s.Annotation.Boxes, r.ClassNames)); err != nil {
		return fmt.Errorf("Failed to write preview %v: %w", out, err)
	}
	r.rendered++
	return nil
}

// Draw returns a copy of img with every box outlined and captioned with its class name
func Draw(img image.Image, boxes []yolo.Box, classNames []string) image.Image {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(2)
	for _, b := range boxes {
		c := ClassColor(b.Class)
		x, y, w, h := b.Rect(width, height)
		dc.SetColor(c)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()

		name := strconv.Itoa(b.Class)
		if b.Class < len(classNames) {
			name = classNames[b.Class]
		}
		tw, th := dc.MeasureString(name)
		ty := y - th - 4
		if ty < 0 {
			// No room above the box, so caption inside it
			ty = y
		}
		dc.SetColor(c)
		dc.DrawRectangle(x, ty, tw+4, th+4)
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawStringAnchored(name, x+2, ty+2, 0, 1)
	}
	return dc.Image()
}
