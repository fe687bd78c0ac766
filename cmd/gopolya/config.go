package main

import (
	"os"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/2x3systems/gopolya/libpolya/actions"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DriverConfig holds the defaults for every gopolya command.
//
// Values are taken from DefaultConfig(), then the --config file (if any), then command line flags.
type DriverConfig struct {
	Action  string      `yaml:"action" validate:"required"`
	From    int         `yaml:"from" validate:"min=1"`
	To      int         `yaml:"to" validate:"gtefield=From"`
	Colors  int         `yaml:"colors" validate:"min=1"`
	Catalog string      `yaml:"catalog"`
	Workers int         `yaml:"workers" validate:"min=0"`
	Print   PrintConfig `yaml:"print"`
}

type PrintConfig struct {
	Header     bool `yaml:"header"`
	Order      bool `yaml:"order"`
	Asymmetric bool `yaml:"asymmetric"`
}

func DefaultConfig() DriverConfig {
	return DriverConfig{
		Action: "grid",
		From:   2,
		To:     8,
		Colors: gopolya.DefaultColors,
	}
}

// LoadConfig returns DefaultConfig() overlaid with the YAML file at pathname (if given).
func LoadConfig(pathname string) (DriverConfig, error) {
	cfg := DefaultConfig()
	if pathname == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config")
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %q", pathname)
	}
	return cfg, cfg.Validate()
}

// ApplyFlags overrides cfg with each flag that was explicitly set.
func (cfg *DriverConfig) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "action":
			cfg.Action = f.Value.String()
		case "catalog":
			cfg.Catalog = f.Value.String()
		case "from":
			cfg.From, err = flags.GetInt(f.Name)
		case "to":
			cfg.To, err = flags.GetInt(f.Name)
		case "k":
			cfg.Colors, err = flags.GetInt(f.Name)
		case "workers":
			cfg.Workers, err = flags.GetInt(f.Name)
		case "header":
			cfg.Print.Header, err = flags.GetBool(f.Name)
		case "order":
			cfg.Print.Order, err = flags.GetBool(f.Name)
		case "asymmetric":
			cfg.Print.Asymmetric, err = flags.GetBool(f.Name)
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

var gValidate = validator.New()

func (cfg *DriverConfig) Validate() error {
	if err := gValidate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].Field() {
			case "Colors":
				return errors.Wrapf(gopolya.ErrBadColorCount, "k = %d", cfg.Colors)
			case "From", "To":
				return errors.Wrapf(gopolya.ErrBadDomainSize, "from %d to %d", cfg.From, cfg.To)
			}
		}
		return errors.Wrap(err, "invalid config")
	}

	_, err := actions.Lookup(cfg.Action)
	return err
}

func (cfg *DriverConfig) PrintOpts() gopolya.PrintOpts {
	return gopolya.PrintOpts{
		Header:     cfg.Print.Header,
		Order:      cfg.Print.Order,
		Asymmetric: cfg.Print.Asymmetric,
	}
}
