// Package main is the robomodel command, which builds a symbolic robot model from a URDF file and
// prints it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/robomodel/robomodel/config"
	"github.com/robomodel/robomodel/kinematics"
	"github.com/robomodel/robomodel/logging"
	"github.com/robomodel/robomodel/referenceframe"
	"github.com/robomodel/robomodel/urdf"
)

const (
	// Flags.
	flagConfig       = "config"
	flagURDF         = "urdf"
	flagName         = "name"
	flagFloatingBase = "floating-base"
	flagQuaternion   = "quaternion"
	flagWorkers      = "workers"
	flagDebug        = "debug"
	flagLogFile      = "log-file"
	flagJoint        = "joint"
	flagTheta        = "theta"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "robomodel",
		Usage: "build symbolic kinematic models of robots",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load settings from `FILE`; command line flags override it",
			},
			&cli.StringFlag{
				Name:  flagURDF,
				Usage: "robot description `FILE`",
			},
			&cli.StringFlag{
				Name:  flagName,
				Usage: "robot name, defaults to the name in the description",
			},
			&cli.BoolFlag{
				Name:  flagFloatingBase,
				Usage: "connect the root link to the world through a floating joint",
			},
			&cli.BoolFlag{
				Name:  flagQuaternion,
				Usage: "parameterize the floating base orientation by a quaternion",
			},
			&cli.IntFlag{
				Name:  flagWorkers,
				Usage: "number of joints built at once, zero for one per CPU",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotating it as it grows",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "summary",
				Usage:  "print the joints of the model and their indices",
				Action: summaryAction,
			},
			{
				Name:      "transform",
				Usage:     "evaluate the transform of one joint",
				UsageText: "robomodel --urdf FILE transform --joint NAME [--theta VALUE]...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagJoint,
						Required: true,
						Usage:    "joint `NAME`",
					},
					&cli.Float64SliceFlag{
						Name:  flagTheta,
						Usage: "joint variables, one for most joints and 6 or 7 for a floating base",
					},
				},
				Action: transformAction,
			},
			{
				Name:   "graph",
				Usage:  "print the link tree in the Graphviz DOT language",
				Action: graphAction,
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of the config file",
				Action: func(c *cli.Context) error {
					out, err := json.MarshalIndent(config.Schema(), "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, string(out))
					return nil
				},
			},
		},
		Action: summaryAction,
	}
}

// settings merges the config file, if any, with the command line flags.
func settings(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet(flagURDF) {
		cfg.URDF = c.String(flagURDF)
	}
	if c.IsSet(flagName) {
		cfg.Name = c.String(flagName)
	}
	if c.IsSet(flagFloatingBase) {
		cfg.FloatingBase = c.Bool(flagFloatingBase)
	}
	if c.IsSet(flagQuaternion) {
		cfg.UsingQuaternion = c.Bool(flagQuaternion)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	if c.Bool(flagDebug) {
		cfg.LogLevel = "debug"
	}
	if c.IsSet(flagLogFile) {
		cfg.LogFile = c.String(flagLogFile)
	}
	source := "command line"
	if path := c.String(flagConfig); path != "" {
		source = path
	}
	if err := cfg.Validate(source); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withRobot loads the robot and passes it to f. Any log file is closed once f returns.
func withRobot(c *cli.Context, f func(*kinematics.Robot) error) (err error) {
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	logger := logging.NewLogger("robomodel")
	logger.SetLevel(cfg.Level())
	if cfg.LogFile != "" {
		fileAppender := logging.NewFileAppender(cfg.LogFile)
		defer multierr.AppendInvoke(&err, multierr.Close(fileAppender))
		logger.AddAppender(fileAppender)
	}
	logging.ReplaceGlobal(logger)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	r, err := urdf.ParseModelXMLFile(ctx, cfg.URDF, cfg.LoaderOptions(logger))
	if err != nil {
		return err
	}
	return f(r)
}

func summaryAction(c *cli.Context) error {
	return withRobot(c, func(r *kinematics.Robot) error {
		fmt.Fprintln(c.App.Writer, r.String())
		return nil
	})
}

func graphAction(c *cli.Context) error {
	return withRobot(c, func(r *kinematics.Robot) error {
		out, err := r.MarshalDOT()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, string(out))
		return nil
	})
}

func transformAction(c *cli.Context) error {
	return withRobot(c, func(r *kinematics.Robot) error {
		return printTransform(c, r)
	})
}

func printTransform(c *cli.Context, r *kinematics.Robot) error {
	name := c.String(flagJoint)
	j, ok := r.JointByName(name)
	if !ok {
		return errors.Errorf("no joint named %q", name)
	}
	vals := c.Float64Slice(flagTheta)
	if len(vals) == 0 {
		vals = make([]float64, len(j.Variables()))
		if j.Type() == referenceframe.FloatingJoint && len(vals) == 7 {
			// identity orientation; q1 is the scalar part
			vals[3] = 1
		}
	}

	fmt.Fprintf(c.App.Writer, "joint %q (%s) at %v\n", name, j.Type(), vals)
	if len(vals) == 1 && j.HomTransformFunc() != nil {
		h, err := j.EvalHomTransform(vals[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "homogeneous transform:")
		fmt.Fprintln(c.App.Writer, h.String())
	}
	x, err := j.EvalTransform(vals...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "spatial transform:")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(c.App.Writer, "%v\n", x.RawRowView(i))
	}
	return nil
}
