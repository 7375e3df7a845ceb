// Package formats provides codecs for the files the generator consumes and
// produces: COCO zone annotations, STL solids and colored PLY output.
package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/accufoot/pkg/geometry"
)

// COCO format errors.
var (
	ErrNoImageDescriptor = errors.New("annotation file has no image descriptor")
	ErrBadImageSize      = errors.New("annotation image dimensions must be positive")
	ErrBadSegmentation   = errors.New("segmentation must be a flat list of at least 3 x,y pairs")
)

// COCOFile is a COCO-style annotation document. Only the fields the pipeline
// needs are decoded; everything else in the document is ignored.
type COCOFile struct {
	Images      []COCOImage      `json:"images"`
	Categories  []COCOCategory   `json:"categories"`
	Annotations []COCOAnnotation `json:"annotations"`
}

// COCOImage describes the reference image the zones were drawn on.
type COCOImage struct {
	ID     int `json:"id"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// COCOCategory is a named zone category. Several categories may share a name.
type COCOCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// COCOAnnotation is one closed polygon belonging to a category.
type COCOAnnotation struct {
	ID           int         `json:"id"`
	CategoryID   int         `json:"category_id"`
	Segmentation [][]float64 `json:"segmentation"`
}

// Polygon converts the first segmentation (a flat x0,y0,x1,y1,... sequence)
// into a polygon.
func (a COCOAnnotation) Polygon() (geometry.Polygon, error) {
	if len(a.Segmentation) == 0 {
		return nil, fmt.Errorf("annotation %d: %w", a.ID, ErrBadSegmentation)
	}
	flat := a.Segmentation[0]
	if len(flat) < 6 || len(flat)%2 != 0 {
		return nil, fmt.Errorf("annotation %d: %w", a.ID, ErrBadSegmentation)
	}
	poly := make(geometry.Polygon, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		poly = append(poly, geometry.Point2D{X: flat[i], Y: flat[i+1]})
	}
	return poly, nil
}

// ParseCOCO decodes and validates an annotation document. Every annotation
// must carry a usable polygon; a malformed one fails the whole parse.
func ParseCOCO(data []byte) (*COCOFile, error) {
	var doc COCOFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding annotation JSON: %w", err)
	}

	if len(doc.Images) == 0 {
		return nil, ErrNoImageDescriptor
	}
	if doc.Images[0].Width <= 0 || doc.Images[0].Height <= 0 {
		return nil, ErrBadImageSize
	}
	for _, ann := range doc.Annotations {
		if _, err := ann.Polygon(); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

// LoadCOCO reads and parses an annotation file from disk.
func LoadCOCO(path string) (*COCOFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseCOCO(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
