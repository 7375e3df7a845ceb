package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/accufoot/internal/pipeline"
)

// Pipeline diagnostics forwarded to clients are capped at this many bytes.
const maxDiagnosticLen = 500

// statusResponse is the error (and simple status) JSON shape.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// generateResponse is the success JSON shape for POST /generate.
type generateResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	ModelURL string `json:"model_url"`
}

// handleGenerate validates the form, maps requested areas onto the foot's
// whitelist and runs one generation under the output-path lock.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	areas := r.PostForm["areas"]
	footName := r.PostFormValue("foot")
	size := r.PostFormValue("size")

	if len(areas) == 0 {
		writeError(w, http.StatusBadRequest, "Please select at least one reflexology area.")
		return
	}
	state, footName, ok := s.footFromRequest(footName)
	if !ok {
		writeError(w, http.StatusBadRequest, "Please select either Left Foot or Right Foot.")
		return
	}
	if size == "" {
		writeError(w, http.StatusBadRequest, "Please select a foot size.")
		return
	}

	// Whitelist filtering: unknown values are collected for the diagnostic,
	// duplicates collapse, order of first appearance is kept.
	var selected, unknown []string
	seen := make(map[string]bool)
	for _, area := range areas {
		key := strings.ToUpper(area)
		switch {
		case !state.whitelist[key]:
			unknown = append(unknown, area)
		case !seen[key]:
			seen[key] = true
			selected = append(selected, key)
		}
	}
	if len(selected) == 0 {
		msg := "None of the selected areas could be mapped to known zones."
		if len(unknown) > 0 {
			msg += fmt.Sprintf(" Unrecognized values: %s.", strings.Join(unknown, ", "))
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := os.Stat(state.inputs.Model); err != nil {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Input STL file for %s foot not found.", footName))
		return
	}

	filename := fmt.Sprintf("%s_%s.ply", s.cfg.Output.Basename, footName)
	outPath := filepath.Join(s.cfg.Output.Dir, filename)

	unlock := s.locks.lock(outPath)
	defer unlock()

	if err := os.MkdirAll(s.cfg.Output.Dir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Error during generation: %s", truncate(err.Error(), maxDiagnosticLen)))
		return
	}

	s.log.Infof("generating %s foot, zones: %s", footName, strings.Join(selected, ", "))
	res, err := pipeline.Generate(pipeline.GenerateOptions{
		InputSTL:    state.inputs.Model,
		Annotations: state.inputs.Annotations,
		OutputPLY:   outPath,
		Zones:       selected,
		Params:      s.cfg.Params(),
		Palette:     s.palette,
		Log:         s.log,
	})
	if err != nil {
		s.log.Errorf("generation failed for %s foot: %v", footName, err)
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Error during generation: %s", truncate(err.Error(), maxDiagnosticLen)))
		return
	}
	if _, err := os.Stat(outPath); err != nil {
		writeError(w, http.StatusInternalServerError,
			"Generation ran but the output PLY file was not created.")
		return
	}

	s.log.Infof("generated %s in %s: %d bumps", filename, res.Elapsed, res.Report.TotalBumps)
	writeJSON(w, http.StatusOK, generateResponse{
		Status: "success",
		Message: fmt.Sprintf("Generation successful for %s foot. Processed zones: %s",
			footName, strings.Join(selected, ", ")),
		Filename: filename,
		ModelURL: "/models/" + filename,
	})
}

// handleZones reports the sorted selectable zone keys per foot.
func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"left":  s.feet["left"].zones.Whitelist(),
		"right": s.feet["right"].zones.Whitelist(),
	})
}

// handleModels serves generated artifacts. Only plain filenames directly in
// the output directory are reachable.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/models/")
	if name == "" || name != filepath.Base(name) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	path := filepath.Join(s.cfg.Output.Dir, name)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	http.ServeFile(w, r, path)
}

// footFromRequest resolves the foot form field, case-insensitively.
func (s *Server) footFromRequest(name string) (*footState, string, bool) {
	folded := strings.ToLower(name)
	state, ok := s.feet[folded]
	return state, folded, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, statusResponse{Status: "error", Message: msg})
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
