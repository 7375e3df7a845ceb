package zone

import (
	"reflect"
	"testing"

	"github.com/Faultbox/accufoot/pkg/formats"
)

func testDoc() *formats.COCOFile {
	return &formats.COCOFile{
		Images: []formats.COCOImage{{ID: 1, Width: 200, Height: 300}},
		Categories: []formats.COCOCategory{
			{ID: 1, Name: "HEART"},
			{ID: 2, Name: "Liver"},
			{ID: 3, Name: "heart"}, // same zone, second category id
			{ID: 4, Name: "LEFT_FOOT_ORGANS"},
		},
		Annotations: []formats.COCOAnnotation{
			{ID: 10, CategoryID: 1, Segmentation: [][]float64{{0, 0, 10, 0, 10, 10}}},
			{ID: 11, CategoryID: 3, Segmentation: [][]float64{{20, 20, 30, 20, 30, 30}}},
			{ID: 12, CategoryID: 99, Segmentation: [][]float64{{0, 0, 5, 0, 5, 5}}},
		},
	}
}

func TestNewSet(t *testing.T) {
	s, err := NewSet(testDoc())
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	if s.ImageWidth != 200 || s.ImageHeight != 300 {
		t.Errorf("image size = %vx%v, want 200x300", s.ImageWidth, s.ImageHeight)
	}
	want := []string{"heart", "liver", "left_foot_organs"}
	if !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("Names() = %v, want %v", s.Names(), want)
	}
	if len(s.Annotations) != 3 {
		t.Fatalf("got %d annotations, want 3", len(s.Annotations))
	}
	if s.Annotations[0].Zone != "heart" || s.Annotations[1].Zone != "heart" {
		t.Errorf("heart annotations resolved to %q/%q",
			s.Annotations[0].Zone, s.Annotations[1].Zone)
	}
	if s.Annotations[2].Zone != "" {
		t.Errorf("orphan annotation resolved to %q, want empty", s.Annotations[2].Zone)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	s, _ := NewSet(testDoc())

	for _, spelling := range []string{"heart", "HEART", "Heart", "hEaRt"} {
		selected, unknown := s.Resolve([]string{spelling})
		if len(unknown) != 0 {
			t.Errorf("%q reported unknown: %v", spelling, unknown)
		}
		// "heart" owns category ids 1 and 3.
		if !selected[1] || !selected[3] || len(selected) != 2 {
			t.Errorf("%q selected %v, want {1,3}", spelling, selected)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	s, _ := NewSet(testDoc())

	selected, unknown := s.Resolve([]string{"SPLEEN", "liver"})
	if !reflect.DeepEqual(unknown, []string{"SPLEEN"}) {
		t.Errorf("unknown = %v, want [SPLEEN]", unknown)
	}
	if !selected[2] || len(selected) != 1 {
		t.Errorf("selected = %v, want {2}", selected)
	}
}

func TestWhitelistExcludesReserved(t *testing.T) {
	s, _ := NewSet(testDoc())

	got := s.Whitelist()
	want := []string{"HEART", "LIVER"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Whitelist() = %v, want %v", got, want)
	}
}
