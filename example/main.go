// Command ftindex-demo exercises the engine end to end: ingest a batch of
// documents into a MemoryIndexer, dump it to a chunk file, bind the segment
// into a Catalog, and run a boolean/phrase query against the result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/neganovalexey/ftindex/analyzer"
	"github.com/neganovalexey/ftindex/column"
	"github.com/neganovalexey/ftindex/fsio"
	"github.com/neganovalexey/ftindex/indexer"
	"github.com/neganovalexey/ftindex/metrics"
	"github.com/neganovalexey/ftindex/query"
	"github.com/neganovalexey/ftindex/rowid"
)

const columnID = 1

var documents = []string{
	"A finite-state automaton is an abstract machine that recognizes regular languages.",
	"A finite-state transducer extends an automaton with an output tape.",
	"Weighted finite-state transducers compose paths and accumulate path weights.",
	"The determinization of a transducer can blow up exponentially in the worst case.",
	"Minimization finds the smallest automaton equivalent to a given one.",
}

func main() {
	log := logrus.New()

	dir, err := os.MkdirTemp("", "ftindex-demo-*")
	if err != nil {
		log.Fatalf("mkdir temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	ns, err := fsio.NewFSNamespace(dir, log)
	if err != nil {
		log.Fatalf("open namespace: %v", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	registry := analyzer.NewDefaultRegistry()

	cfg := indexer.Config{
		ChunkName:        "seg0",
		AnalyzerName:     "standard",
		BlockSize:        64,
		PositionsEnabled: true,
		PoolWidth:        4,
		Metrics:          m,
	}
	idx := indexer.New(context.Background(), cfg, registry, ns)

	batch := column.Batch{Values: documents}
	base := rowid.Pack(0, 0)
	if err := idx.Insert(batch, 0, batch.Len(), base, false); err != nil {
		log.Fatalf("insert: %v", err)
	}
	idx.CommitSync()
	if err := idx.Dump(false, false); err != nil {
		log.Fatalf("dump: %v", err)
	}

	seg := indexer.NewSegmentIndexEntry(base)
	seg.AddFtChunkIndexEntry(cfg.ChunkName, base, uint32(batch.Len()))

	cat := indexer.NewCatalog(cfg.PositionsEnabled, m)
	cat.BindSegment(columnID, ns, seg)

	reader, err := cat.OpenColumnIndexReader(columnID)
	if err != nil {
		log.Fatalf("open column reader: %v", err)
	}

	driver := &query.Driver{
		Registry:      registry,
		DefaultField:  "body",
		FieldAnalyzer: map[string]string{"body": "standard"},
	}
	readers := query.Readers{"body": reader}

	for _, text := range []string{
		`transducer AND automaton`,
		`"finite state" AND automaton`,
		`transducer AND NOT automaton`,
	} {
		node, err := driver.Parse(text, nil)
		if err != nil {
			log.Fatalf("parse %q: %v", text, err)
		}
		it, err := node.Build(readers)
		if err != nil {
			log.Fatalf("build %q: %v", text, err)
		}

		fmt.Printf("query %q:\n", text)
		for d := it.Seek(0); d != rowid.Invalid; d = it.Seek(d + 1) {
			offset := d.SegmentOffset()
			fmt.Printf("  doc %d: %s\n", offset, documents[offset])
		}
	}
}
