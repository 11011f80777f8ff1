package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/gdsc/ic50"
	"github.com/carbocation/pfx"
	"google.golang.org/api/googleapi"
)

// Streaming inserts are limited in request size, so rows are sent in chunks.
const insertChunkSize = 5000

type WrappedBigQuery struct {
	Context  context.Context
	Client   *bigquery.Client
	Project  string
	Database string
	Table    string
}

func insertBigQuery(BQ *WrappedBigQuery, long []ic50.Measurement) error {
	var err error

	BQ.Context = context.Background()
	BQ.Client, err = bigquery.NewClient(BQ.Context, BQ.Project)
	if err != nil {
		return fmt.Errorf("connecting to BigQuery: %v", err)
	}
	defer BQ.Client.Close()

	table := BQ.Client.Dataset(BQ.Database).Table(BQ.Table)

	if err := ensureTable(BQ.Context, table); err != nil {
		return pfx.Err(err)
	}

	inserter := table.Inserter()
	for _, chunk := range chunks(long, insertChunkSize) {
		if err := inserter.Put(BQ.Context, chunk); err != nil {
			return pfx.Err(err)
		}
		log.Printf("Inserted %d rows\n", len(chunk))
	}

	return nil
}

func ensureTable(ctx context.Context, table *bigquery.Table) error {
	_, err := table.Metadata(ctx)
	if err == nil {
		return nil
	}

	if e, ok := err.(*googleapi.Error); !ok || e.Code != http.StatusNotFound {
		return err
	}

	schema, err := bigquery.InferSchema(ic50.Measurement{})
	if err != nil {
		return err
	}

	log.Printf("Creating table %s.%s.%s\n", table.ProjectID, table.DatasetID, table.TableID)

	return table.Create(ctx, &bigquery.TableMetadata{Schema: schema})
}

func chunks(long []ic50.Measurement, size int) [][]ic50.Measurement {
	out := make([][]ic50.Measurement, 0, len(long)/size+1)
	for start := 0; start < len(long); start += size {
		end := start + size
		if end > len(long) {
			end = len(long)
		}
		out = append(out, long[start:end])
	}

	return out
}
