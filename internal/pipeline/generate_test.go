package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/accufoot/pkg/formats"
)

const generateTestAnnotations = `{
	"images": [{"id": 1, "width": 100, "height": 100}],
	"categories": [{"id": 1, "name": "HEART"}],
	"annotations": [
		{"id": 10, "category_id": 1, "segmentation": [[25,25, 45,25, 45,45, 25,45]]}
	]
}`

func writeGenerateFixtures(t *testing.T) (stlPath, annPath, outPath string) {
	t.Helper()
	dir := t.TempDir()

	stlPath = filepath.Join(dir, "sole.stl")
	f, err := os.Create(stlPath)
	if err != nil {
		t.Fatalf("creating fixture STL: %v", err)
	}
	if err := formats.WriteSTL(f, solidBox(100, 100, 5)); err != nil {
		t.Fatalf("writing fixture STL: %v", err)
	}
	f.Close()

	annPath = filepath.Join(dir, "zones.json")
	if err := os.WriteFile(annPath, []byte(generateTestAnnotations), 0o644); err != nil {
		t.Fatalf("writing fixture annotations: %v", err)
	}

	outPath = filepath.Join(dir, "out.ply")
	return stlPath, annPath, outPath
}

func TestGenerate(t *testing.T) {
	stlPath, annPath, outPath := writeGenerateFixtures(t)

	res, err := Generate(GenerateOptions{
		InputSTL:    stlPath,
		Annotations: annPath,
		OutputPLY:   outPath,
		Zones:       []string{"heart"},
		Params:      DefaultParams(),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 20x20 px zone at step 5 -> 16 bumps on a flat sole.
	if res.Report.TotalBumps != 16 {
		t.Errorf("total bumps = %d, want 16", res.Report.TotalBumps)
	}
	if res.STLPath != filepath.Join(filepath.Dir(outPath), "out.stl") {
		t.Errorf("stl path = %s", res.STLPath)
	}

	if _, err := os.Stat(res.PLYPath); err != nil {
		t.Errorf("PLY artifact missing: %v", err)
	}
	exported, err := formats.LoadSTL(res.STLPath)
	if err != nil {
		t.Fatalf("reading exported STL: %v", err)
	}
	if want := 12 + 16*342; exported.TriangleCount() != want {
		t.Errorf("exported triangles = %d, want %d", exported.TriangleCount(), want)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	_, annPath, outPath := writeGenerateFixtures(t)

	_, err := Generate(GenerateOptions{
		InputSTL:    filepath.Join(t.TempDir(), "missing.stl"),
		Annotations: annPath,
		OutputPLY:   outPath,
		Zones:       []string{"heart"},
		Params:      DefaultParams(),
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestGenerateNoMatchingZonesLeavesNoArtifact(t *testing.T) {
	stlPath, annPath, outPath := writeGenerateFixtures(t)

	_, err := Generate(GenerateOptions{
		InputSTL:    stlPath,
		Annotations: annPath,
		OutputPLY:   outPath,
		Zones:       []string{"spleen"},
		Params:      DefaultParams(),
	})
	if !errors.Is(err, ErrNoMatchingZones) {
		t.Fatalf("err = %v, want ErrNoMatchingZones", err)
	}
	if _, err := os.Stat(outPath); !errors.Is(err, fs.ErrNotExist) {
		t.Error("fatal run must not leave an output artifact")
	}
}

func TestGenerateBadAnnotations(t *testing.T) {
	stlPath, _, outPath := writeGenerateFixtures(t)
	badPath := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"images": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(GenerateOptions{
		InputSTL:    stlPath,
		Annotations: badPath,
		OutputPLY:   outPath,
		Zones:       []string{"heart"},
		Params:      DefaultParams(),
	})
	if !errors.Is(err, formats.ErrNoImageDescriptor) {
		t.Errorf("err = %v, want ErrNoImageDescriptor", err)
	}
}
