package main

import (
	"fmt"
	"io"

	"github.com/carbocation/gdsc/features"
	"github.com/carbocation/gdsc/fitdata"
	"github.com/carbocation/gdsc/ic50"
	"github.com/carbocation/gdsc/mobem"
	"github.com/carbocation/gdsc/plot"
)

func summarizeIC50(opts options) error {
	r, err := ic50.Read(opts.IC50Path, opts.Sep, opts.Client)
	if err != nil {
		return err
	}

	header(opts.IC50Path)
	fmt.Fprint(STDOUT, r)

	if opts.Describe {
		desc, err := r.Describe()
		if err != nil {
			return err
		}
		if err := desc.Write(STDOUT, '\t'); err != nil {
			return err
		}
	}

	if err := withPlot(opts, "ic50_count", func(w io.Writer) error {
		_, err := r.PlotIC50Count(w)
		return err
	}); err != nil {
		return err
	}

	var measured []float64
	if err := withPlot(opts, "ic50_hist", func(w io.Writer) error {
		measured, err = r.Hist(w, opts.Config.Bins)
		return err
	}); err != nil {
		return err
	}

	if opts.TextHist {
		return plot.Text(STDOUT, measured, opts.Config.Bins, 60)
	}

	return nil
}

func summarizeFeatures(opts options) error {
	gf, err := features.ReadSchema(opts.FeaturesPath, opts.Sep, opts.Client, opts.Config.Columns)
	if err != nil {
		return err
	}

	header(opts.FeaturesPath)
	fmt.Fprintln(STDOUT, gf)

	var counts []features.TissueCount
	if err := withPlot(opts, "tissues_pie", func(pie io.Writer) error {
		return withPlot(opts, "tissues_bar", func(bar io.Writer) error {
			counts, err = gf.Plot(pie, bar)
			return err
		})
	}); err != nil {
		return err
	}

	for _, c := range counts {
		fmt.Fprintf(STDOUT, "%s\t%d\n", c.Tissue, c.Count)
	}

	return nil
}

func summarizeMoBEM(opts options) error {
	m, err := mobem.Read(opts.MoBEMPath, opts.Sep, opts.Client)
	if err != nil {
		return err
	}

	header(opts.MoBEMPath)
	fmt.Fprint(STDOUT, m)

	return nil
}

func summarizeFitData(opts options) error {
	sep := opts.Sep
	if sep == 0 {
		sep = '\t'
	}

	f, err := fitdata.Read(opts.FitDataDir, sep, opts.Client)
	if err != nil {
		return err
	}

	header(opts.FitDataDir)
	fmt.Fprint(STDOUT, f)

	for suffix, hist := range map[string]func(io.Writer, int) ([]float64, error){
		"residuals_hist": f.HistResiduals,
		"fit_ic50_hist":  f.HistIC50,
		"auc_hist":       f.HistAUC,
	} {
		if err := withPlot(opts, suffix, func(w io.Writer) error {
			_, err := hist(w, opts.Config.Bins)
			return err
		}); err != nil {
			return err
		}
	}

	return withPlot(opts, "cell_line_scatter", func(w io.Writer) error {
		_, _, err := f.Scatter(w)
		return err
	})
}
