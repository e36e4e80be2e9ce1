package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/urfave/cli/v3"

	"github.com/yizeng/gab/gin/mongo/inventory/cmd/app"
)

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

// @title        Inventory API
// @version      1.0
// @description  Item store backed by MongoDB.
// @BasePath     /
func main() {
	cmd := &cli.Command{
		Name:  "inventory-api",
		Usage: "serve the inventory item API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file",
				Value:   app.DefaultConfigPath,
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return app.Start(c.String("config"))
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("inventory-api %s (%s)\n", version, commit)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
