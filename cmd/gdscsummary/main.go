// gdscsummary prints descriptive summaries of GDSC datasets: IC50 matrices,
// genomic feature matrices, MoBEM exports and curve-fitting releases. It can
// also render the standard plots of each dataset as PNG files.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc"
	_ "github.com/carbocation/gdsc/compileinfoprint"
	"github.com/carbocation/gdsc/config"
	"github.com/carbocation/gdsc/plot"
	"github.com/carbocation/pfx"
)

var (
	BufferSize = 4096 * 32
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

type options struct {
	IC50Path     string
	FeaturesPath string
	MoBEMPath    string
	FitDataDir   string
	PlotPrefix   string
	Describe     bool
	TextHist     bool

	Config config.JSONConfig
	Sep    rune
	Client *storage.Client
}

func main() {
	defer STDOUT.Flush()

	var opts options
	var configPath, sep string
	var bins int

	flag.StringVar(&opts.IC50Path, "ic50", "", "IC50 matrix (TSV/CSV, optionally compressed, local or gs://)")
	flag.StringVar(&opts.FeaturesPath, "features", "", "Genomic features matrix")
	flag.StringVar(&opts.MoBEMPath, "mobem", "", "PANCAN MoBEM matrix export")
	flag.StringVar(&opts.FitDataDir, "fitdata", "", "Directory (or gs:// prefix) holding dfAUCv17.tsv, dfIC50v17.tsv, dfResv17.tsv and dfCL.tsv")
	flag.StringVar(&opts.PlotPrefix, "plot_prefix", "", "If set, PNG plots are written to files starting with this prefix")
	flag.BoolVar(&opts.Describe, "describe", false, "Print per-drug descriptive statistics of the IC50 matrix")
	flag.BoolVar(&opts.TextHist, "text_hist", false, "Print a terminal histogram of the measured IC50 values")
	flag.StringVar(&configPath, "config", "", "Optional JSON config overriding column names and defaults")
	flag.StringVar(&sep, "sep", "", "Delimiter (tab, comma, or a single character). If empty, it is detected from each file.")
	flag.IntVar(&bins, "bins", 0, "Number of histogram bins. If 0, the config value (default 20) is used.")
	flag.Parse()

	if opts.IC50Path == "" && opts.FeaturesPath == "" && opts.MoBEMPath == "" && opts.FitDataDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts.Config = config.Default()
	if configPath != "" {
		var err error
		if opts.Config, err = config.ParseJSONConfigFromPath(configPath); err != nil {
			log.Fatalln(err)
		}
	}
	if sep != "" {
		opts.Config.Delimiter = sep
	}
	if bins > 0 {
		opts.Config.Bins = bins
	}
	plot.Width, plot.Height = opts.Config.PlotWidth, opts.Config.PlotHeight

	var err error
	if opts.Sep, err = opts.Config.Sep(); err != nil {
		log.Fatalln(err)
	}

	if usesGoogleStorage(opts.IC50Path, opts.FeaturesPath, opts.MoBEMPath, opts.FitDataDir, opts.PlotPrefix) {
		opts.Client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer opts.Client.Close()
	}

	if err := run(opts); err != nil {
		log.Fatalln(err)
	}
}

func usesGoogleStorage(paths ...string) bool {
	for _, path := range paths {
		if strings.HasPrefix(path, "gs://") {
			return true
		}
	}

	return false
}

func run(opts options) error {
	if opts.IC50Path != "" {
		if err := summarizeIC50(opts); err != nil {
			return err
		}
	}

	if opts.FeaturesPath != "" {
		if err := summarizeFeatures(opts); err != nil {
			return err
		}
	}

	if opts.MoBEMPath != "" {
		if err := summarizeMoBEM(opts); err != nil {
			return err
		}
	}

	if opts.FitDataDir != "" {
		if err := summarizeFitData(opts); err != nil {
			return err
		}
	}

	return nil
}

// withPlot hands draw the output for one plot, or a nil writer if plots were
// not requested.
func withPlot(opts options, suffix string, draw func(w io.Writer) error) error {
	if opts.PlotPrefix == "" {
		return draw(nil)
	}

	path := opts.PlotPrefix + suffix + ".png"
	f, err := gdsc.Create(path, opts.Client)
	if err != nil {
		return pfx.Err(err)
	}

	if err := draw(f); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	log.Println("Wrote", path)

	return f.Close()
}

func header(title string) {
	fmt.Fprintf(STDOUT, "== %s\n", title)
}
