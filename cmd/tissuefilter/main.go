// tissuefilter restricts a genomic features matrix to (or away from) a set of
// tissues, drops the features that no remaining cell line carries, and writes
// the result as delimited text.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	_ "github.com/carbocation/gdsc/compileinfoprint"
	"github.com/carbocation/gdsc/config"
	"github.com/carbocation/gdsc/features"
	"github.com/carbocation/pfx"
)

func main() {
	var input, output, keep, drop, configPath, sep string
	var minimum float64

	flag.StringVar(&input, "features", "", "Genomic features matrix (local or gs://)")
	flag.StringVar(&output, "output", "", "Output path (local or gs://). If empty, the table is written to stdout.")
	flag.StringVar(&keep, "keep", "", "Comma-separated tissues to keep")
	flag.StringVar(&drop, "drop", "", "Comma-separated tissues to drop")
	flag.Float64Var(&minimum, "min_sum", 0, "Features whose sum over the remaining cell lines is at most this value are dropped")
	flag.StringVar(&configPath, "config", "", "Optional JSON config overriding column names")
	flag.StringVar(&sep, "sep", "", "Delimiter (tab, comma, or a single character). If empty, it is detected on input and tab is used on output.")
	flag.Parse()

	if input == "" || (keep == "" && drop == "") {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.ParseJSONConfigFromPath(configPath); err != nil {
			log.Fatalln(err)
		}
	}
	if sep != "" {
		cfg.Delimiter = sep
	}
	if output == "" {
		output = cfg.Output
	}

	delim, err := cfg.Sep()
	if err != nil {
		log.Fatalln(err)
	}

	var client *storage.Client
	if strings.HasPrefix(input, "gs://") || strings.HasPrefix(output, "gs://") {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer client.Close()
	}

	gf, err := features.ReadSchema(input, delim, client, cfg.Columns)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d cell lines and %d columns from %s\n", gf.DF.NRows(), gf.DF.NCols(), input)

	if err := filter(gf, splitList(keep), splitList(drop), minimum); err != nil {
		log.Fatalln(err)
	}

	if delim == 0 {
		delim = '\t'
	}

	if output == "" {
		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		if err := gf.DF.Write(w, delim); err != nil {
			log.Fatalln(err)
		}
		return
	}

	if err := gf.ToCSV(output, delim, client); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", output)
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}

// filter applies the keep list, then the drop list, then the optional extra
// pruning threshold.
func filter(gf *features.GenomicFeatures, keep, drop []string, minimum float64) error {
	report := func(action string, dropped []string) {
		log.Printf("%s: %d cell lines remain, dropped %d empty features\n", action, gf.DF.NRows(), len(dropped))
	}

	if len(keep) > 0 {
		dropped, err := gf.KeepTissueIn(keep...)
		if err != nil {
			return err
		}
		report("Kept "+strings.Join(keep, ", "), dropped)
	}

	if len(drop) > 0 {
		dropped, err := gf.DropTissueIn(drop...)
		if err != nil {
			return err
		}
		report("Dropped "+strings.Join(drop, ", "), dropped)
	}

	if minimum > 0 {
		dropped, err := gf.PruneFeatures(minimum)
		if err != nil {
			return err
		}
		report(fmt.Sprintf("Pruned features with sum <= %g", minimum), dropped)
	}

	return nil
}
