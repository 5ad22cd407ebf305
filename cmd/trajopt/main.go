// Package main is the trajopt command line tool.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/openmotionlab/trajopt/config"
	"github.com/openmotionlab/trajopt/logging"
	"github.com/openmotionlab/trajopt/ocp"
	"github.com/openmotionlab/trajopt/plotting"
)

func main() {
	var logger logging.Logger

	app := &cli.App{
		Name:            "trajopt",
		Usage:           "inspect multi-phase trajectory optimization problems",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logger = logging.NewDebugLogger("cli")
			} else {
				logger = logging.NewBlankLogger("cli")
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "layout",
				Usage:     "print the decision-vector layout of a problem description",
				ArgsUsage: "<problem.yaml>",
				Action: func(c *cli.Context) error {
					return layoutAction(c, logger)
				},
			},
			{
				Name:      "plot",
				Usage:     "render the registered plots of a problem description",
				ArgsUsage: "<problem.yaml>",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "out",
						Value: "plots",
						Usage: "output directory for rendered figures",
					},
				},
				Action: func(c *cli.Context) error {
					return plotAction(c, logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildFromArgs(c *cli.Context, logger logging.Logger) (*ocp.Problem, error) {
	if c.NArg() != 1 {
		return nil, errors.New("expected exactly one problem description file")
	}
	cfg, err := config.Load(c.Args().First())
	if err != nil {
		return nil, err
	}
	return config.Build(cfg, logger)
}

func layoutAction(c *cli.Context, logger logging.Logger) error {
	prob, err := buildFromArgs(c, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "problem %q: %d phases\n", prob.Name(), prob.NumPhases())
	fmt.Fprint(c.App.Writer, prob.Layout().String())
	return nil
}

// plotAction renders every phase's registered plots over empty solve
// data, which previews each figure before anything is solved.
func plotAction(c *cli.Context, logger logging.Logger) error {
	prob, err := buildFromArgs(c, logger)
	if err != nil {
		return err
	}
	outDir := c.Path("out")
	for _, ph := range prob.Phases() {
		dir := filepath.Join(outDir, fmt.Sprintf("phase_%d", ph.Index()))
		files, err := plotting.Render(ph.Plots(), &plotting.Data{}, dir)
		if err != nil {
			return errors.Wrapf(err, "phase %d", ph.Index())
		}
		for _, file := range files {
			fmt.Fprintln(c.App.Writer, file)
		}
	}
	return nil
}
