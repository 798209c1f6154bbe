package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kkats/go-plcbridge/logger"
	"github.com/kkats/go-plcbridge/plcdata"
)

// serviceConfig is the resolved daemon configuration.
type serviceConfig struct {
	Host            string
	Port            int
	ReadIdleTimeout time.Duration
	LogLevel        logger.LogLevel
	TemplateName    string
	Template        *plcdata.Frame
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		Host:            "0.0.0.0",
		Port:            5000,
		ReadIdleTimeout: 5 * time.Second,
		LogLevel:        logger.InfoLevel,
		TemplateName:    "default",
	}
}

type fileConfig struct {
	Host            string      `toml:"host"`
	Port            int         `toml:"port"`
	ReadIdleTimeout string      `toml:"read_idle_timeout"`
	LogLevel        string      `toml:"log_level"`
	Template        string      `toml:"template"`
	Fields          []fileField `toml:"field"`
}

type fileField struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
	Size int    `toml:"size"`
}

func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("host") {
		host := strings.TrimSpace(raw.Host)
		if host != "" {
			cfg.Host = host
		}
	}

	if meta.IsDefined("port") {
		if raw.Port < 0 || raw.Port > 65535 {
			return serviceConfig{}, fmt.Errorf("port %d out of range [0, 65535]", raw.Port)
		}
		cfg.Port = raw.Port
	}

	if meta.IsDefined("read_idle_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadIdleTimeout))
		if err != nil {
			return serviceConfig{}, fmt.Errorf("parse read_idle_timeout: %w", err)
		}
		cfg.ReadIdleTimeout = d
	}

	if meta.IsDefined("log_level") {
		level, err := parseLogLevel(raw.LogLevel)
		if err != nil {
			return serviceConfig{}, err
		}
		cfg.LogLevel = level
	}

	if meta.IsDefined("template") {
		name := strings.TrimSpace(raw.Template)
		if name != "" {
			cfg.TemplateName = name
		}
	}

	if len(raw.Fields) == 0 {
		return serviceConfig{}, errors.New("config defines no fields")
	}

	template, err := buildTemplate(raw.Fields)
	if err != nil {
		return serviceConfig{}, err
	}
	cfg.Template = template

	return cfg, nil
}

// buildTemplate turns the ordered [[field]] entries into a frame layout.
// Field order in the file is wire order.
func buildTemplate(fields []fileField) (*plcdata.Frame, error) {
	template := plcdata.NewFrame()

	for i, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("field %d: missing name", i)
		}

		code, ok := plcdata.TypeCodeFromString(strings.TrimSpace(f.Type))
		if !ok {
			return nil, fmt.Errorf("field %q: unknown type %q", name, f.Type)
		}

		var err error
		switch {
		case code == plcdata.String:
			err = template.AddString(name, f.Size, "")
		case f.Size != 0:
			err = fmt.Errorf("field %q: size is only valid for string fields", name)
		default:
			err = template.AddField(name, code, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}

	return template, nil
}

func parseLogLevel(s string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "warn", "warning":
		return logger.WarnLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", s)
	}
}
