package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Log levels re-exported for callers that do not import charmbracelet/log.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// CLI holds the state shared by every image-grid command.
type CLI struct {
	// Logger receives diagnostics. It writes to stderr so stdout stays free
	// for command output and, under serve, for the MCP protocol.
	Logger *log.Logger

	// In is the terminal the resize prompt reads from. Nil means os.Stdin.
	In *os.File

	config  *viper.Viper
	cfgFile string
	version buildInfo
}

type buildInfo struct {
	version, commit, date string
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		config:  newConfig(),
		version: buildInfo{version: "dev", commit: "none", date: "unknown"},
	}
}

// SetLogLevel changes the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVersion records the build information reported by --version.
func (c *CLI) SetVersion(version, commit, date string) {
	c.version = buildInfo{version: version, commit: commit, date: date}
}

// RootCommand builds the image-grid command tree.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "image-grid",
		Short: "Split images into multi-post grids",
		Long: `image-grid cuts one image into rows×cols tiles sized for a portrait
post grid. Tiles are numbered in posting order: tile_1 is the bottom-right
cell, so posting tile_1 first rebuilds the picture on a profile page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       c.version.version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n",
		c.version.version, c.version.commit, c.version.date))

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default $HOME/.image-grid.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.splitCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.serveCommand())

	return root
}

func (c *CLI) stdin() *os.File {
	if c.In != nil {
		return c.In
	}
	return os.Stdin
}
