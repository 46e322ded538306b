package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/hexcore/internal/config"
	"github.com/standardbeagle/hexcore/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", c.String("config"), err)
	}

	if s := c.String("strategy"); s != "" {
		cfg.Compare.Strategy = s
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:    "hexcore",
		Usage:   "compare binary files and report differing regions",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the .hexcore.kdl configuration file",
				Value: ".hexcore.kdl",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "compare",
				Usage:     "compare two files once and print the differing blocks",
				ArgsUsage: "FILE1 FILE2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "strategy",
						Usage: "diff strategy: \"hash\" (scalable) or \"myers\" (exact, small inputs)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the result as JSON",
					},
				},
				Action: runCompare,
			},
			{
				Name:      "watch",
				Usage:     "watch two files and recompare whenever either changes",
				ArgsUsage: "FILE1 FILE2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "strategy",
						Usage: "diff strategy: \"hash\" or \"myers\"",
					},
				},
				Action: runWatch,
			},
			{
				Name:  "version",
				Usage: "print detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Println(version.FullInfo())
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
