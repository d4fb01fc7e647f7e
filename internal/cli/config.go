package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-grid/internal/errors"
	"github.com/ironsheep/image-grid/internal/grid"
	"github.com/ironsheep/image-grid/internal/imaging"
)

// Configuration keys for the platform contract. They are read from the config
// file or from IMAGE_GRID_* environment variables (dashes become underscores).
const (
	keyContentWidth  = "content-width"
	keyContentHeight = "content-height"
	keySafeZone      = "safe-zone"
	keyBorder        = "border"
	keyBlurRadius    = "blur-radius"
	keyCanvasFill    = "canvas-fill"
	keyBorderFill    = "border-fill"
)

const (
	configName = ".image-grid"
	envPrefix  = "IMAGE_GRID"
)

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyContentWidth, grid.DefaultContentWidth)
	v.SetDefault(keyContentHeight, grid.DefaultContentHeight)
	v.SetDefault(keySafeZone, grid.DefaultSafeZoneWidth)
	v.SetDefault(keyBorder, grid.DefaultBorderWidth)
	v.SetDefault(keyBlurRadius, grid.DefaultBlurRadius)
	v.SetDefault(keyCanvasFill, "#000000")
	v.SetDefault(keyBorderFill, "#ffffff")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file named by --config, or $HOME/.image-grid.yaml
// when it exists. A missing default file is not an error.
func (c *CLI) loadConfig() error {
	if c.cfgFile != "" {
		c.config.SetConfigFile(c.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		c.config.AddConfigPath(home)
		c.config.SetConfigType("yaml")
		c.config.SetConfigName(configName)
	}

	if err := c.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(errors.KindValidation, err, "reading config")
	}
	c.Logger.Debug("Loaded config", "file", filepath.Clean(c.config.ConfigFileUsed()))
	return nil
}

// bindFlags lets config file and environment values stand in for flags the
// user did not set. Bound at run time because split and plan share flag names.
func (c *CLI) bindFlags(flags *pflag.FlagSet) error {
	if err := c.config.BindPFlags(flags); err != nil {
		return errors.Wrap(errors.KindValidation, err, "binding flags")
	}
	return nil
}

// platform builds the platform contract from configuration.
func (c *CLI) platform() (grid.Platform, error) {
	canvas, err := imaging.ParseColor(c.config.GetString(keyCanvasFill))
	if err != nil {
		return grid.Platform{}, errors.Wrap(errors.KindValidation, err, "%s", keyCanvasFill)
	}
	border, err := imaging.ParseColor(c.config.GetString(keyBorderFill))
	if err != nil {
		return grid.Platform{}, errors.Wrap(errors.KindValidation, err, "%s", keyBorderFill)
	}

	p := grid.Platform{
		ContentWidth:  c.config.GetInt(keyContentWidth),
		ContentHeight: c.config.GetInt(keyContentHeight),
		SafeZoneWidth: c.config.GetInt(keySafeZone),
		BorderWidth:   c.config.GetInt(keyBorder),
		BlurRadius:    c.config.GetFloat64(keyBlurRadius),
		CanvasFill:    canvas,
		BorderFill:    border,
	}
	if err := p.Validate(); err != nil {
		return grid.Platform{}, err
	}
	return p, nil
}

// spec builds the grid spec from the bound rows/cols and the platform.
func (c *CLI) spec() (grid.Spec, error) {
	p, err := c.platform()
	if err != nil {
		return grid.Spec{}, err
	}
	s := grid.Spec{Rows: c.config.GetInt("rows"), Cols: c.config.GetInt("cols"), Platform: p}
	return s, s.Validate()
}
