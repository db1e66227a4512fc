package main

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-leakage/dsp/spectrum"
	"github.com/cwbudde/algo-leakage/dsp/window"
)

// spectrumReport is the output of the spectrum command.
type spectrumReport struct {
	Size       int            `json:"size" yaml:"size"`
	Period     float64        `json:"period" yaml:"period"`
	TrueBin    float64        `json:"true_bin" yaml:"true_bin"`
	NearestBin int            `json:"nearest_bin" yaml:"nearest_bin"`
	Backend    string         `json:"backend" yaml:"backend"`
	Periodic   bool           `json:"periodic" yaml:"periodic"`
	FloorDB    float64        `json:"floor_db" yaml:"floor_db"`
	Windows    []windowResult `json:"windows" yaml:"windows"`
}

// windowResult is one window's spectrum and leakage summary. Levels below
// the floor, including exact zeros, are clamped to it.
type windowResult struct {
	Window            string    `json:"window" yaml:"window"`
	MainLobeHalfWidth float64   `json:"main_lobe_half_width" yaml:"main_lobe_half_width"`
	PeakBin           int       `json:"peak_bin" yaml:"peak_bin"`
	PeakMagnitude     float64   `json:"peak_magnitude" yaml:"peak_magnitude"`
	MainLobeBins      []int     `json:"main_lobe_bins" yaml:"main_lobe_bins"`
	SidelobeBin       int       `json:"sidelobe_bin" yaml:"sidelobe_bin"`
	SidelobeLeveldB   float64   `json:"sidelobe_level_db" yaml:"sidelobe_level_db"`
	LeakingBins       int       `json:"leaking_bins" yaml:"leaking_bins"`
	ScallopLossdB     float64   `json:"scallop_loss_db" yaml:"scallop_loss_db"`
	Energy            float64   `json:"energy" yaml:"energy"`
	Magnitude         []float64 `json:"magnitude" yaml:"magnitude"`
	MagnitudeDB       []float64 `json:"magnitude_db" yaml:"magnitude_db"`
}

func newSpectrumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spectrum",
		Short: "Print the windowed DFT magnitude in dB and a side-lobe summary",
		Example: `  leakage spectrum -n 32 -p 10.3
  leakage spectrum -n 16 -p 4 -w rect -o csv`,
		Args: cobra.NoArgs,
		RunE: a.runSpectrum,
	}
}

func (a *app) runSpectrum(cmd *cobra.Command, _ []string) error {
	rep, err := buildSpectrumReport(cmd.Context(), a.cfg, a.log)
	if err != nil {
		return err
	}
	return renderSpectrum(cmd.OutOrStdout(), a.cfg.OutputFormat, rep)
}

// wrapBin folds a frequency in bins onto [0, n).
func wrapBin(period float64, n int) float64 {
	nf := float64(n)
	r := math.Mod(period, nf)
	if r < 0 {
		r += nf
	}
	if r >= nf {
		r = 0
	}
	return r
}

func buildSpectrumReport(ctx context.Context, cfg *Config, log *zap.Logger) (*spectrumReport, error) {
	types, err := cfg.windowTypes()
	if err != nil {
		return nil, err
	}

	t, err := cfg.transformer()
	if err != nil {
		return nil, err
	}

	n, period := cfg.Size, cfg.Period
	windows := make([][]float64, len(types))
	for i, typ := range types {
		windows[i] = window.Generate(typ, n, cfg.windowOptions()...)
	}

	spectra, err := spectrum.ComputeBatch(ctx, n, period, windows, spectrum.WithTransformer(t))
	if err != nil {
		return nil, fmt.Errorf("compute spectra: %w", err)
	}

	trueBin := wrapBin(period, n)
	rep := &spectrumReport{
		Size:       n,
		Period:     period,
		TrueBin:    trueBin,
		NearestBin: int(math.Round(trueBin)) % n,
		Backend:    cfg.Backend,
		Periodic:   cfg.Periodic,
		FloorDB:    cfg.FloorDB,
		Windows:    make([]windowResult, len(types)),
	}

	for i, typ := range types {
		res, err := summarize(n, period, windows[i], spectra[i], cfg.FloorDB)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		res.Window = typ.String()
		rep.Windows[i] = res

		log.Debug("spectrum computed",
			zap.String("window", res.Window),
			zap.Int("peak_bin", res.PeakBin),
			zap.Ints("main_lobe_bins", res.MainLobeBins),
			zap.Float64("sidelobe_level_db", res.SidelobeLeveldB),
			zap.Int("leaking_bins", res.LeakingBins),
		)
	}

	return rep, nil
}

func summarize(n int, period float64, w []float64, bins []complex128, floorDB float64) (windowResult, error) {
	halfWidth := window.FirstNull(w)
	if halfWidth <= 0 {
		halfWidth = 1
	}

	l, err := spectrum.AnalyzeLeakage(bins, period, halfWidth)
	if err != nil {
		return windowResult{}, err
	}

	xw, err := spectrum.Windowed(n, period, w)
	if err != nil {
		return windowResult{}, err
	}

	scallop, err := spectrum.ScallopLoss(xw, bins, period)
	if err != nil {
		return windowResult{}, err
	}

	return windowResult{
		MainLobeHalfWidth: halfWidth,
		PeakBin:           l.PeakBin,
		PeakMagnitude:     l.PeakMagnitude,
		MainLobeBins:      l.MainLobeBins,
		SidelobeBin:       l.SidelobeBin,
		SidelobeLeveldB:   math.Max(l.SidelobeLeveldB, floorDB),
		LeakingBins:       l.LeakingBins,
		ScallopLossdB:     math.Max(scallop, floorDB),
		Energy:            spectrum.Energy(bins),
		Magnitude:         spectrum.Magnitude(bins),
		MagnitudeDB:       spectrum.MagnitudeDB(bins, floorDB),
	}, nil
}
