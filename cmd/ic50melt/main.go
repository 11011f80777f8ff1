// ic50melt converts an IC50 matrix into long format (one row per measured
// cell line and drug) and writes it to stdout. The rows can additionally be
// stored in a SQLite database or streamed into a BigQuery table.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc"
	_ "github.com/carbocation/gdsc/compileinfoprint"
	"github.com/carbocation/gdsc/config"
	"github.com/carbocation/gdsc/ic50"
	"github.com/carbocation/gdsc/sqlstore"
	"github.com/carbocation/pfx"
)

var (
	BufferSize = 4096 * 32
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var input, sep, sqlitePath, configPath string
	var quiet bool
	BQ := &WrappedBigQuery{}

	flag.StringVar(&input, "ic50", "", "IC50 matrix (local or gs://)")
	flag.StringVar(&sep, "sep", "", "Input delimiter (tab, comma, or a single character). If empty, it is detected.")
	flag.StringVar(&sqlitePath, "sqlite", "", "If set, measurements are also inserted into this SQLite database")
	flag.StringVar(&BQ.Project, "project", "", "If set with -dataset and -table, measurements are also streamed into BigQuery. Defaults to the project in -config.")
	flag.StringVar(&BQ.Database, "dataset", "", "BigQuery dataset")
	flag.StringVar(&BQ.Table, "table", "", "BigQuery table. Created if it does not exist.")
	flag.BoolVar(&quiet, "quiet", false, "Do not print the long-format table to stdout")
	flag.StringVar(&configPath, "config", "", "Optional JSON config providing the delimiter and BigQuery project")
	flag.Parse()

	if input == "" {
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

	delim, err := resolve(cfg, sep, BQ)
	if err != nil {
		log.Fatalln(err)
	}

	var client *storage.Client
	if strings.HasPrefix(input, "gs://") {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer client.Close()
	}

	r, err := ic50.Read(input, delim, client)
	if err != nil {
		log.Fatalln(err)
	}

	long, err := r.Melt()
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("%d measurements across %d cell lines and %d drugs\n", len(long), r.DF.NRows(), len(r.DrugIDs()))

	if !quiet {
		if err := ic50.WriteLong(STDOUT, long, '\t'); err != nil {
			log.Fatalln(err)
		}
	}

	if sqlitePath != "" {
		if err := saveSQLite(gdsc.ExpandHome(sqlitePath), long); err != nil {
			log.Fatalln(err)
		}
		log.Println("Stored measurements in", sqlitePath)
	}

	if BQ.Project != "" && BQ.Database != "" && BQ.Table != "" {
		if err := insertBigQuery(BQ, long); err != nil {
			log.Fatalln(err)
		}
		log.Printf("Inserted measurements into %s.%s.%s\n", BQ.Project, BQ.Database, BQ.Table)
	}
}

// resolve merges the command line with the config. Flags win.
func resolve(cfg config.JSONConfig, sep string, BQ *WrappedBigQuery) (rune, error) {
	if sep != "" {
		cfg.Delimiter = sep
	}
	if BQ.Project == "" {
		BQ.Project = cfg.Project
	}

	return cfg.Sep()
}

func saveSQLite(path string, long []ic50.Measurement) error {
	store, err := sqlstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Insert(long)
}
