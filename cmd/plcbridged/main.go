// Command plcbridged serves a PLC bridge link from a TOML config file.
//
// The config defines the listen address and the frame layout exchanged on
// the link. Until a real controller handler is wired in, the daemon responds
// with the placeholder transform (integers incremented, floats doubled).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kkats/go-plcbridge/bridge"
	"github.com/kkats/go-plcbridge/logger"
	"github.com/kkats/go-plcbridge/plcdata"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "plcbridged: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadServiceConfig(configPath)
	if err != nil {
		return err
	}

	logger.SetLevel(cfg.LogLevel)
	log := logger.GetLogger()

	registry := plcdata.NewRegistry()
	if err := registry.Register(cfg.TemplateName, cfg.Template); err != nil {
		return err
	}

	connCfg, err := bridge.NewConnectionConfig(cfg.Host, cfg.Port,
		bridge.WithReadIdleTimeout(cfg.ReadIdleTimeout),
		bridge.WithLogger(log),
	)
	if err != nil {
		return err
	}

	server, err := bridge.NewServer(connCfg, cfg.Template)
	if err != nil {
		return err
	}

	log.Info("starting bridge server",
		"template", cfg.TemplateName,
		"frame_size", cfg.Template.Size(),
		"fields", cfg.Template.Len(),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		server.Stop()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
