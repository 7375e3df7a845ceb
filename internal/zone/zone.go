// Package zone models the reflex-zone annotation set: case-insensitive zone
// name resolution, per-zone polygons and the zone color palette.
package zone

import (
	"sort"
	"strings"

	"github.com/Faultbox/accufoot/pkg/formats"
	"github.com/Faultbox/accufoot/pkg/geometry"
)

// Reserved category names that group whole-foot annotations rather than
// individual zones. They never appear in the selectable whitelist.
var reservedCategories = map[string]bool{
	"LEFT_FOOT_ORGANS":  true,
	"RIGHT_FOOT_ORGANS": true,
}

// Annotation is one closed polygon resolved to its zone name. Zone is the
// case-folded category name, or "" when the category id is unknown.
type Annotation struct {
	ID         int
	CategoryID int
	Zone       string
	Polygon    geometry.Polygon
}

// Set is the immutable zone annotation set for one foot side.
type Set struct {
	ImageWidth  float64
	ImageHeight float64
	Annotations []Annotation // document order

	names     []string         // folded, first-seen order
	idsByName map[string][]int // folded name -> category ids
}

// NewSet builds a Set from a parsed annotation document.
func NewSet(doc *formats.COCOFile) (*Set, error) {
	s := &Set{
		ImageWidth:  float64(doc.Images[0].Width),
		ImageHeight: float64(doc.Images[0].Height),
		idsByName:   make(map[string][]int),
	}

	nameByID := make(map[int]string, len(doc.Categories))
	for _, cat := range doc.Categories {
		name := strings.ToLower(cat.Name)
		if _, seen := s.idsByName[name]; !seen {
			s.names = append(s.names, name)
		}
		s.idsByName[name] = append(s.idsByName[name], cat.ID)
		nameByID[cat.ID] = name
	}

	for _, ann := range doc.Annotations {
		poly, err := ann.Polygon()
		if err != nil {
			return nil, err
		}
		s.Annotations = append(s.Annotations, Annotation{
			ID:         ann.ID,
			CategoryID: ann.CategoryID,
			Zone:       nameByID[ann.CategoryID],
			Polygon:    poly,
		})
	}
	return s, nil
}

// Load reads and parses the annotation file for one foot side.
func Load(path string) (*Set, error) {
	doc, err := formats.LoadCOCO(path)
	if err != nil {
		return nil, err
	}
	return NewSet(doc)
}

// Names returns all zone names (folded) in first-seen document order.
func (s *Set) Names() []string {
	return s.names
}

// Resolve maps requested zone names (any casing) to the set of selected
// category ids. Names with no matching category are returned in unknown.
func (s *Set) Resolve(requested []string) (selected map[int]bool, unknown []string) {
	selected = make(map[int]bool)
	for _, name := range requested {
		ids, ok := s.idsByName[strings.ToLower(name)]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		for _, id := range ids {
			selected[id] = true
		}
	}
	return selected, unknown
}

// Whitelist returns the selectable zone keys for the request boundary:
// upper-cased category names minus the reserved grouping categories, sorted.
func (s *Set) Whitelist() []string {
	var keys []string
	for _, name := range s.names {
		key := strings.ToUpper(name)
		if !reservedCategories[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
