// Package yolo reads Darknet/YOLO annotation files.
//
// Each non-empty line of an annotation file describes one object:
//
//	<class> <center x> <center y> <width> <height>
//
// The coordinates are normalized to [0,1] relative to the image dimensions.
package yolo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Box is one labelled object
type Box struct {
	Class   int
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// Rect returns the box in pixel coordinates of an image with the given dimensions
func (b Box) Rect(imgWidth, imgHeight int) (x, y, w, h float64) {
	w = b.Width * float64(imgWidth)
	h = b.Height * float64(imgHeight)
	x = b.CenterX*float64(imgWidth) - w/2
	y = b.CenterY*float64(imgHeight) - h/2
	return
}

// LineError is a line that could not be understood
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %v '%v': %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Annotation is the parsed content of one annotation file.
// Malformed lines are collected in Invalid instead of failing the whole file.
type Annotation struct {
	Boxes   []Box
	Invalid []*LineError
}

// Parse reads annotation lines from r.
// The only error returned is a read error.
func Parse(r io.Reader) (*Annotation, error) {
	a := &Annotation{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		box, err := parseLine(text)
		if err != nil {
			a.Invalid = append(a.Invalid, &LineError{Line: lineNo, Text: text, Err: err})
			continue
		}
		a.Boxes = append(a.Boxes, box)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseFile reads the annotation file at path
func ParseFile(path string) (*Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("Error reading annotation file '%v': %w", path, err)
	}
	return a, nil
}

func parseLine(text string) (Box, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return Box{}, fmt.Errorf("expected 5 fields, got %v", len(fields))
	}
	cls, err := strconv.Atoi(fields[0])
	if err != nil {
		return Box{}, fmt.Errorf("invalid class index: %w", err)
	}
	if cls < 0 {
		return Box{}, fmt.Errorf("negative class index %v", cls)
	}
	var v [4]float64
	for i := 0; i < 4; i++ {
		v[i], err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return Box{}, fmt.Errorf("invalid coordinate: %w", err)
		}
		if v[i] < 0 || v[i] > 1 {
			return Box{}, fmt.Errorf("coordinate %v is outside [0,1]", fields[i+1])
		}
	}
	return Box{
		Class:   cls,
		CenterX: v[0],
		CenterY: v[1],
		Width:   v[2],
		Height:  v[3],
	}, nil
}
