package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/filex"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/netx"
	"github.com/dmitrijs2005/conciencia/internal/reconciler"
)

// download and readFile are seams for tests.
var (
	download = netx.Download
	readFile = os.ReadFile
)

// DataService moves whole documents in and out of the journal.
type DataService struct {
	client     client.Client
	reconciler *reconciler.Reconciler
	log        logging.Logger
}

func NewDataService(c client.Client, r *reconciler.Reconciler, log logging.Logger) *DataService {
	return &DataService{client: c, reconciler: r, log: log.With("module", "data")}
}

// Import reads source, a local path or an http(s) link, and merges it.
func (s *DataService) Import(ctx context.Context, source string) (*reconciler.Result, error) {
	var (
		data []byte
		err  error
	)
	if netx.IsURL(source) {
		data, err = download(ctx, source)
	} else {
		data, err = readFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read import document: %w", err)
	}

	s.log.Debug(ctx, "importing document", "source", source, "bytes", len(data))
	return s.reconciler.Import(ctx, data)
}

// Export writes the export document to path and returns its size.
func (s *DataService) Export(ctx context.Context, path string, opts api.ExportRequest) (int, error) {
	doc, err := s.client.Export(ctx, opts)
	if err != nil {
		return 0, err
	}
	if err := filex.WriteFileAtomic(path, doc, 0o600); err != nil {
		return 0, err
	}
	return len(doc), nil
}

// Backup stores an export on the server side object storage and returns a
// temporary download link.
func (s *DataService) Backup(ctx context.Context, opts api.ExportRequest) (*api.ExportLinkResponse, error) {
	return s.client.ExportToStorage(ctx, opts)
}
