// Package server implements the HTTP request boundary: zone whitelist
// validation, per-foot generation runs and artifact serving.
package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Faultbox/accufoot/internal/config"
	"github.com/Faultbox/accufoot/internal/zone"
)

// footState holds everything loaded once at startup for one foot side.
type footState struct {
	inputs    config.FootConfig
	zones     *zone.Set
	whitelist map[string]bool
}

// Server validates generation requests against the per-foot zone whitelists
// and serves generated artifacts from the output directory.
type Server struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	palette zone.Palette
	feet    map[string]*footState
	locks   *pathLocks
}

// New loads both annotation sets and builds the whitelists. A missing or
// malformed annotation file is fatal: the server refuses to start rather
// than accept requests it cannot validate.
func New(cfg *config.Config, log *zap.SugaredLogger) (*Server, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	palette := zone.DefaultPalette()
	if err := palette.Apply(cfg.Palette); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		palette: palette,
		feet:    make(map[string]*footState, 2),
		locks:   newPathLocks(),
	}
	for _, name := range []string{"left", "right"} {
		inputs, err := cfg.Foot(name)
		if err != nil {
			return nil, err
		}
		set, err := zone.Load(inputs.Annotations)
		if err != nil {
			return nil, fmt.Errorf("loading %s foot annotations: %w", name, err)
		}
		whitelist := make(map[string]bool)
		for _, key := range set.Whitelist() {
			whitelist[key] = true
		}
		s.feet[name] = &footState{inputs: inputs, zones: set, whitelist: whitelist}
		log.Infof("loaded %d selectable zones for %s foot", len(whitelist), name)
	}
	return s, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/zones", s.handleZones)
	mux.HandleFunc("/models/", s.handleModels)
	return mux
}

// ListenAndServe blocks serving requests on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Infof("listening on %s", addr)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	return srv.ListenAndServe()
}
