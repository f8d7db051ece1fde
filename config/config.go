// Package config defines the settings a robot model is built with.
package config

import (
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/robomodel/robomodel/kinematics"
	"github.com/robomodel/robomodel/logging"
	"github.com/robomodel/robomodel/urdf"
)

// Config describes how to build one robot model.
type Config struct {
	// Name overrides the robot name from the description file.
	Name string `yaml:"name" json:"name,omitempty"`
	// URDF is the path of the robot description.
	URDF            string `yaml:"urdf" json:"urdf"`
	FloatingBase    bool   `yaml:"floating_base" json:"floating_base,omitempty"`
	UsingQuaternion bool   `yaml:"using_quaternion" json:"using_quaternion,omitempty"`
	// Workers bounds how many joints are built at once; zero means one per CPU.
	Workers  int    `yaml:"workers" json:"workers,omitempty"`
	LogLevel string `yaml:"log_level" json:"log_level,omitempty"`
	// LogFile additionally writes logs to a size rotated file.
	LogFile string `yaml:"log_file" json:"log_file,omitempty"`
}

// Schema returns the JSON schema of a config file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// NewConfigValidationFieldRequiredError returns an error for a config missing a required field.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return errors.Errorf("%s: %q is required", path, field)
}

// NewConfigValidationError returns an error specifying a config validation error.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrap(err, path)
}

// Validate reports every problem with the config. path names the config in error messages.
func (c *Config) Validate(path string) error {
	var errs error
	if c.URDF == "" {
		errs = multierr.Append(errs, NewConfigValidationFieldRequiredError(path, "urdf"))
	}
	if c.Workers < 0 {
		errs = multierr.Append(errs, NewConfigValidationError(path, errors.Errorf("workers must not be negative, got %d", c.Workers)))
	}
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			errs = multierr.Append(errs, NewConfigValidationError(path, err))
		}
	}
	return errs
}

// Level returns the configured log level, INFO when unset.
func (c *Config) Level() logging.Level {
	if c.LogLevel == "" {
		return logging.INFO
	}
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// RobotOptions returns the robot wide settings. UsingQuaternion only applies to a floating base
// and is dropped otherwise.
func (c *Config) RobotOptions() kinematics.Options {
	return kinematics.Options{FloatingBase: c.FloatingBase, UsingQuaternion: c.FloatingBase && c.UsingQuaternion}
}

// LoaderOptions returns the options for loading the URDF.
func (c *Config) LoaderOptions(logger logging.Logger) urdf.Options {
	return urdf.Options{
		Options: c.RobotOptions(),
		Name:    c.Name,
		Workers: c.Workers,
		Logger:  logger,
	}
}
