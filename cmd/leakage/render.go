package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// errWriter keeps the first write error so table code can print freely and
// check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func renderSpectrum(w io.Writer, format string, rep *spectrumReport) error {
	switch format {
	case "json":
		return encodeJSON(w, rep)
	case "yaml":
		return encodeYAML(w, rep)
	case "csv":
		return writeSpectrumCSV(w, rep)
	default:
		return writeSpectrumTable(w, rep)
	}
}

func writeSpectrumTable(w io.Writer, rep *spectrumReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}

	ew.printf("N = %d, P = %g (bin %.2f), backend %s\n\n", rep.Size, rep.Period, rep.TrueBin, rep.Backend)

	ew.printf("Bin")
	for _, r := range rep.Windows {
		ew.printf("\t%s [dB]", r.Window)
	}
	ew.printf("\t\n")

	ew.printf("---")
	for range rep.Windows {
		ew.printf("\t---------")
	}
	ew.printf("\t\n")

	for mu := range rep.Size {
		ew.printf("%d", mu)
		for _, r := range rep.Windows {
			ew.printf("\t%.2f", r.MagnitudeDB[mu])
		}
		if mu == rep.NearestBin {
			ew.printf("\t<- P")
		} else {
			ew.printf("\t")
		}
		ew.printf("\n")
	}

	ew.printf("\nWindow\tPeak Bin\tPeak |X|\tMain Lobe\tSidelobe Bin\tSidelobe [dB]\tLeaking Bins\tScallop [dB]\n")
	ew.printf("------\t--------\t--------\t---------\t------------\t-------------\t------------\t------------\n")
	for _, r := range rep.Windows {
		sidelobe := "-"
		if r.SidelobeBin >= 0 {
			sidelobe = strconv.Itoa(r.SidelobeBin)
		}
		ew.printf("%s\t%d\t%.4f\t%v\t%s\t%.2f\t%d\t%.2f\n",
			r.Window,
			r.PeakBin,
			r.PeakMagnitude,
			r.MainLobeBins,
			sidelobe,
			r.SidelobeLeveldB,
			r.LeakingBins,
			r.ScallopLossdB,
		)
	}

	if ew.err != nil {
		return fmt.Errorf("write table: %w", ew.err)
	}
	return tw.Flush()
}

func writeSpectrumCSV(w io.Writer, rep *spectrumReport) error {
	cw := csv.NewWriter(w)

	header := []string{"bin"}
	for _, r := range rep.Windows {
		header = append(header, r.Window+"_magnitude", r.Window+"_db")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for mu := range rep.Size {
		row := []string{strconv.Itoa(mu)}
		for _, r := range rep.Windows {
			row = append(row,
				strconv.FormatFloat(r.Magnitude[mu], 'g', -1, 64),
				strconv.FormatFloat(r.MagnitudeDB[mu], 'f', 4, 64),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func renderWindows(w io.Writer, format string, infos []windowInfo) error {
	switch format {
	case "json":
		return encodeJSON(w, infos)
	case "yaml":
		return encodeYAML(w, infos)
	case "csv":
		return writeWindowsCSV(w, infos)
	default:
		return writeWindowsTable(w, infos)
	}
}

func writeWindowsTable(w io.Writer, infos []windowInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}

	ew.printf("Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n")
	ew.printf("------\t----\t-------------\t-----------\t-------------\t-------------\t--------------\t------------\n")
	for _, in := range infos {
		label := in.Window
		if in.Periodic {
			label += " (periodic)"
		}
		ew.printf("%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			label,
			in.Size,
			in.CoherentGain,
			in.ENBW,
			in.Bandwidth3dB,
			in.HighestSidelobedB,
			in.FirstMinimumBins,
			in.ScallopLossdB,
		)
	}

	if ew.err != nil {
		return fmt.Errorf("write table: %w", ew.err)
	}
	return tw.Flush()
}

func writeWindowsCSV(w io.Writer, infos []windowInfo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"window", "size", "periodic", "coherent_gain", "enbw_bins", "bandwidth_3db_bins",
		"highest_sidelobe_db", "first_minimum_bins", "scallop_loss_db",
	}); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, in := range infos {
		if err := cw.Write([]string{
			in.Window,
			strconv.Itoa(in.Size),
			strconv.FormatBool(in.Periodic),
			f(in.CoherentGain),
			f(in.ENBW),
			f(in.Bandwidth3dB),
			f(in.HighestSidelobedB),
			f(in.FirstMinimumBins),
			f(in.ScallopLossdB),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
