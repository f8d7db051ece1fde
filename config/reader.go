package config

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Read reads and validates the config at path. See Load.
func Read(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config at path without validating it, so that callers can fill in missing
// fields before calling Validate. Environment variables written as ${VAR} are substituted first.
// Relative URDF and log file paths are resolved against the directory of the config file.
func Load(path string) (*Config, error) {
	buf, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config file")
	}
	cfg, err := Decode(path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	cfg.URDF = resolve(path, cfg.URDF)
	cfg.LogFile = resolve(path, cfg.LogFile)
	return cfg, nil
}

// FromReader decodes and validates a YAML (or JSON) config.
func FromReader(path string, r io.Reader) (*Config, error) {
	cfg, err := Decode(path, r)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes a YAML (or JSON) config without validating it. Unknown fields are an error.
func Decode(path string, r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Errorf("%s: config is empty", path)
		}
		return nil, errors.Wrapf(err, "%s: cannot parse config", path)
	}
	return cfg, nil
}

func resolve(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
