// accufoot-server exposes bump generation over HTTP: zone whitelists,
// generation requests and artifact downloads.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/accufoot/internal/config"
	"github.com/Faultbox/accufoot/internal/logger"
	"github.com/Faultbox/accufoot/internal/server"
)

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagAddr   = flag.String("addr", "", "Listen address (default from config)")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fatal(err)
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal(err)
	}
	defer logger.Sync()

	s, err := server.New(cfg, logger.Sugar)
	if err != nil {
		logger.Sugar.Errorf("startup failed: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	if err := s.ListenAndServe(cfg.Server.Addr); err != nil {
		logger.Sugar.Errorf("server stopped: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
