package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCClient implements Client over a single gRPC connection. It is safe for
// concurrent use.
type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *api.ConcienciaClient

	mu        sync.RWMutex
	tokens    Tokens
	onRefresh func(Tokens)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it expired, rotates the pair once and retries the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == api.MethodRefreshToken {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	current := s.Tokens()
	err := invoker(withAccessToken(ctx, current.AccessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if current.RefreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: current.RefreshToken})
	if rerr != nil {
		return rerr
	}
	refreshed := Tokens{UserID: resp.UserID, AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.setTokens(refreshed, true)

	return invoker(withAccessToken(ctx, refreshed.AccessToken), method, req, reply, cc, opts...)
}

// NewConcienciaClientService dials endpointURL. Extra dial options are
// appended after the defaults, which tests use to plug in a bufconn dialer.
func NewConcienciaClientService(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewConcienciaClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) SetTokens(t Tokens) {
	s.setTokens(t, false)
}

func (s *GRPCClient) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *GRPCClient) OnTokensRefreshed(fn func(Tokens)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

func (s *GRPCClient) setTokens(t Tokens, notify bool) {
	s.mu.Lock()
	s.tokens = t
	fn := s.onRefresh
	s.mu.Unlock()

	if notify && fn != nil {
		fn(t)
	}
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, login, password string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &api.RegisterRequest{Login: login, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.UserID, nil
}

// Login authenticates and keeps the returned token pair for later calls.
func (s *GRPCClient) Login(ctx context.Context, login, password string) (Tokens, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Login: login, Password: password})
	if err != nil {
		return Tokens{}, s.mapError(err)
	}

	t := Tokens{UserID: resp.UserID, AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(t)
	return t, nil
}

func (s *GRPCClient) CreateEntry(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateEntry(ctx, &api.CreateEntryRequest{Entry: *e})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entry, nil
}

func (s *GRPCClient) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetEntry(ctx, &api.GetEntryRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entry, nil
}

func (s *GRPCClient) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListEntries(ctx, &api.ListEntriesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) ListIntentions(ctx context.Context, sort string) ([]*models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListIntentions(ctx, &api.ListIntentionsRequest{Sort: sort})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) UpdateEntryState(ctx context.Context, id string, state models.State) (*models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.UpdateEntryState(ctx, &api.UpdateEntryStateRequest{ID: id, State: state})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entry, nil
}

func (s *GRPCClient) AddNote(ctx context.Context, n *models.Note) (*models.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.AddNote(ctx, &api.AddNoteRequest{Note: *n})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Note, nil
}

func (s *GRPCClient) ListNotes(ctx context.Context, entryID string) ([]*models.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListNotes(ctx, &api.ListNotesRequest{EntryID: entryID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Notes, nil
}

func (s *GRPCClient) NoteExists(ctx context.Context, entryID, text string, author models.Author) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.NoteExists(ctx, &api.NoteExistsRequest{EntryID: entryID, Text: text, Author: author})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Exists, nil
}

func (s *GRPCClient) DailyTimeline(ctx context.Context, date string) (*api.DailyTimelineResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.DailyTimeline(ctx, &api.DailyTimelineRequest{Date: date})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AnnotateEmptyPeriod(ctx context.Context, p *models.EmptyPeriod) (*models.EmptyPeriod, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.AnnotateEmptyPeriod(ctx, &api.AnnotateEmptyPeriodRequest{Period: *p})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Period, nil
}

func (s *GRPCClient) ListEmptyPeriods(ctx context.Context, from, to string) ([]*models.EmptyPeriod, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListEmptyPeriods(ctx, &api.ListEmptyPeriodsRequest{From: from, To: to})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Periods, nil
}

func (s *GRPCClient) AnalyzePatterns(ctx context.Context) ([]models.Insight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.AnalyzePatterns(ctx, &api.AnalyzePatternsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Insights, nil
}

func (s *GRPCClient) Export(ctx context.Context, opts api.ExportRequest) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Export(ctx, &opts)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Document, nil
}

func (s *GRPCClient) ExportToStorage(ctx context.Context, opts api.ExportRequest) (*api.ExportLinkResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ExportToStorage(ctx, &opts)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrRefreshTokenExpired.Error() {
			return ErrSessionExpired
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrUnauthorized
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
