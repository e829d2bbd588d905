package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/UnknownOlympus/staffbook/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultURL = "http://localhost:5000/api"

var errInvalidID = errors.New("id must be a positive integer")

// commander holds what every subcommand needs. api is set once flags are parsed.
type commander struct {
	cfg *viper.Viper
	api *client.Client
	log *slog.Logger
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &commander{cfg: viper.New(), out: out}

	root := &cobra.Command{
		Use:           "staffctl",
		Short:         "Command line client for the staffbook records API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("url", defaultURL, "records API base URL (env STAFFBOOK_URL)")
	flags.BoolP("verbose", "v", false, "debug logging")

	c.cfg.SetDefault("url", defaultURL)
	_ = c.cfg.BindEnv("url", "STAFFBOOK_URL")
	_ = c.cfg.BindPFlag("url", flags.Lookup("url"))
	_ = c.cfg.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.createCmd(),
		c.updateCmd(),
		c.deleteCmd(),
		c.statsCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.seedCmd(),
	)

	return root
}

func (c *commander) init(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if c.cfg.GetBool("verbose") {
		level = slog.LevelDebug
	}
	c.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	baseURL := c.cfg.GetString("url")
	c.api = client.New(baseURL, client.CreateHTTPClient(c.log), c.log)
	c.log.DebugContext(cmd.Context(), "Using records API", "url", baseURL)

	return nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}

	return id, nil
}
