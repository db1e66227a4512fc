package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// flagKeys maps persistent flag names to their configuration keys.
var flagKeys = map[string]string{
	"size":      "size",
	"period":    "period",
	"window":    "windows",
	"periodic":  "periodic",
	"floor-db":  "floor_db",
	"backend":   "backend",
	"format":    "output_format",
	"verbose":   "verbose",
	"log-level": "log_level",
}

// app carries the state shared by all subcommands once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "leakage",
		Short: "Show spectral leakage of a windowed complex exponential",
		Long: `leakage computes the N-point DFT of exp(j*2*pi*P*k/N) multiplied by a
window and reports the magnitude spectrum in dB.

When P is not an integer the tone falls between DFT bins and its energy
leaks into every bin. The report shows how the rectangular and Hann windows
trade main-lobe width for side-lobe level.

Without a subcommand it runs "spectrum".`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: a.runSpectrum,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "",
		"config file (default ./leakage.yaml or <user config dir>/leakage/leakage.yaml)")
	flags.IntP("size", "n", 32, "DFT length N")
	flags.Float64P("period", "p", 10.3, "periods per block P, i.e. the tone frequency in bins")
	flags.StringSliceP("window", "w", []string{"rectangular", "hann"}, "windows to compare (rectangular, hann)")
	flags.Bool("periodic", false, "use the periodic (DFT-even) window form instead of the symmetric one")
	flags.Float64("floor-db", -120, "lowest level reported in dB")
	flags.String("backend", "auto", "FFT backend (auto, algofft, gonum, godsp, direct)")
	flags.StringP("format", "o", "table", "output format (table, csv, json, yaml)")
	flags.BoolP("verbose", "v", false, "development logging at debug level")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newSpectrumCmd(a), newWindowsCmd(a), newConfigCmd(a))
	return root
}

// setup merges defaults, environment, config file and flags, then builds the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	setDefaults(a.v)
	bindEnv(a.v)

	var bindErr error
	cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = a.v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return bindErr
	}

	if err := readConfigFile(a.v, a.configFile); err != nil {
		return err
	}

	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Verbose, cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log
	if used := a.v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}
	log.Debug("configuration loaded",
		zap.Int("size", cfg.Size),
		zap.Float64("period", cfg.Period),
		zap.Strings("windows", cfg.Windows),
		zap.String("backend", cfg.Backend),
	)
	return nil
}
