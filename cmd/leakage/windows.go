package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-leakage/dsp/window"
)

// windowInfo holds the measured spectral properties of one window.
type windowInfo struct {
	Window            string  `json:"window" yaml:"window"`
	Size              int     `json:"size" yaml:"size"`
	Periodic          bool    `json:"periodic" yaml:"periodic"`
	CoherentGain      float64 `json:"coherent_gain" yaml:"coherent_gain"`
	ENBW              float64 `json:"enbw_bins" yaml:"enbw_bins"`
	Bandwidth3dB      float64 `json:"bandwidth_3db_bins" yaml:"bandwidth_3db_bins"`
	HighestSidelobedB float64 `json:"highest_sidelobe_db" yaml:"highest_sidelobe_db"`
	FirstMinimumBins  float64 `json:"first_minimum_bins" yaml:"first_minimum_bins"`
	MainLobeWidth     float64 `json:"main_lobe_width_bins" yaml:"main_lobe_width_bins"`
	ScallopLossdB     float64 `json:"scallop_loss_db" yaml:"scallop_loss_db"`
}

func newWindowsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "Print spectral properties of the selected windows",
		Example: `  leakage windows -n 1024
  leakage windows -w hann --periodic -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := analyzeWindows(a.cfg)
			if err != nil {
				return err
			}
			return renderWindows(cmd.OutOrStdout(), a.cfg.OutputFormat, infos)
		},
	}
}

func analyzeWindows(cfg *Config) ([]windowInfo, error) {
	types, err := cfg.windowTypes()
	if err != nil {
		return nil, err
	}

	infos := make([]windowInfo, 0, len(types))
	for _, typ := range types {
		an := window.Analyze(window.Generate(typ, cfg.Size, cfg.windowOptions()...))
		infos = append(infos, windowInfo{
			Window:            typ.String(),
			Size:              cfg.Size,
			Periodic:          cfg.Periodic,
			CoherentGain:      an.CoherentGain,
			ENBW:              an.ENBW,
			Bandwidth3dB:      an.Bandwidth3dB,
			HighestSidelobedB: math.Max(an.HighestSidelobedB, cfg.FloorDB),
			FirstMinimumBins:  an.FirstMinimumBins,
			MainLobeWidth:     an.MainLobeWidth(),
			ScallopLossdB:     an.ScallopLossdB,
		})
	}
	return infos, nil
}
