// Package grpc exposes the services over conciencia.v1.ConcienciaService.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	servermodels "github.com/dmitrijs2005/conciencia/internal/server/models"
	"github.com/dmitrijs2005/conciencia/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, login, password string) (*servermodels.User, error)
	Login(ctx context.Context, login, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type EntryService interface {
	Create(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error)
	Get(ctx context.Context, userID, id string) (*models.Entry, error)
	ListDone(ctx context.Context, userID string) ([]*models.Entry, error)
	ListIntentions(ctx context.Context, userID string, sortBy services.IntentionSort) ([]*models.Entry, error)
	UpdateState(ctx context.Context, userID, id string, state models.State) (*models.Entry, error)
	AddNote(ctx context.Context, userID string, n *models.Note) (*models.Note, error)
	ListNotes(ctx context.Context, userID, entryID string) ([]*models.Note, error)
	NoteExists(ctx context.Context, userID, entryID, text string, author models.Author) (bool, error)
}

type TimelineService interface {
	Daily(ctx context.Context, userID, date string) (*services.DailyTimeline, error)
	AnnotateEmptyPeriod(ctx context.Context, userID string, p *models.EmptyPeriod) (*models.EmptyPeriod, error)
	ListEmptyPeriods(ctx context.Context, userID, from, to string) ([]*models.EmptyPeriod, error)
}

type InsightService interface {
	AnalyzeRecentPatterns(ctx context.Context, userID string) ([]models.Insight, error)
}

type ExportService interface {
	Export(ctx context.Context, userID string, opts services.ExportOptions) ([]byte, error)
	ExportToStorage(ctx context.Context, userID string, opts services.ExportOptions) (*services.ExportLink, error)
}

// Services groups the business logic the transport dispatches to.
type Services struct {
	Users    UserService
	Entries  EntryService
	Timeline TimelineService
	Insights InsightService
	Export   ExportService
}

type GRPCServer struct {
	address      string
	svc          Services
	logger       logging.Logger
	jwtSecret    []byte
	interceptors []grpc.UnaryServerInterceptor
}

// NewGRPCServer builds the server. interceptors run before authentication,
// in order.
func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string, interceptors ...grpc.UnaryServerInterceptor) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		svc:          svc,
		jwtSecret:    []byte(secretKey),
		interceptors: interceptors,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	chain := append(append([]grpc.UnaryServerInterceptor{}, s.interceptors...), s.accessTokenInterceptor)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))

	api.RegisterConcienciaServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
