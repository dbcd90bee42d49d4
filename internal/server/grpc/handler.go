package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/server/services"
)

// toStatus maps service errors onto gRPC status codes. Unexpected errors
// are logged and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request")

	u, err := s.svc.Users.Register(ctx, req.Login, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &api.RegisterResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	tokens, err := s.svc.Users.Login(ctx, req.Login, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TokenResponse{UserID: tokens.UserID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {
	tokens, err := s.svc.Users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TokenResponse{UserID: tokens.UserID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) CreateEntry(ctx context.Context, req *api.CreateEntryRequest) (*api.EntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.svc.Entries.Create(ctx, userID, &req.Entry)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EntryResponse{Entry: e}, nil
}

func (s *GRPCServer) GetEntry(ctx context.Context, req *api.GetEntryRequest) (*api.EntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.svc.Entries.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EntryResponse{Entry: e}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, req *api.ListEntriesRequest) (*api.EntriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Entries.ListDone(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EntriesResponse{Entries: list}, nil
}

func (s *GRPCServer) ListIntentions(ctx context.Context, req *api.ListIntentionsRequest) (*api.EntriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Entries.ListIntentions(ctx, userID, services.IntentionSort(req.Sort))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EntriesResponse{Entries: list}, nil
}

func (s *GRPCServer) UpdateEntryState(ctx context.Context, req *api.UpdateEntryStateRequest) (*api.EntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := s.svc.Entries.UpdateState(ctx, userID, req.ID, req.State)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EntryResponse{Entry: e}, nil
}

func (s *GRPCServer) AddNote(ctx context.Context, req *api.AddNoteRequest) (*api.NoteResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.svc.Entries.AddNote(ctx, userID, &req.Note)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.NoteResponse{Note: n}, nil
}

func (s *GRPCServer) ListNotes(ctx context.Context, req *api.ListNotesRequest) (*api.NotesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.svc.Entries.ListNotes(ctx, userID, req.EntryID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.NotesResponse{Notes: notes}, nil
}

func (s *GRPCServer) NoteExists(ctx context.Context, req *api.NoteExistsRequest) (*api.NoteExistsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := s.svc.Entries.NoteExists(ctx, userID, req.EntryID, req.Text, req.Author)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.NoteExistsResponse{Exists: ok}, nil
}

func (s *GRPCServer) DailyTimeline(ctx context.Context, req *api.DailyTimelineRequest) (*api.DailyTimelineResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	day, err := s.svc.Timeline.Daily(ctx, userID, req.Date)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.DailyTimelineResponse{Date: day.Date, Segments: day.Segments, TotalEmptyMinutes: day.TotalEmptyMinutes}, nil
}

func (s *GRPCServer) AnnotateEmptyPeriod(ctx context.Context, req *api.AnnotateEmptyPeriodRequest) (*api.EmptyPeriodResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.svc.Timeline.AnnotateEmptyPeriod(ctx, userID, &req.Period)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EmptyPeriodResponse{Period: p}, nil
}

func (s *GRPCServer) ListEmptyPeriods(ctx context.Context, req *api.ListEmptyPeriodsRequest) (*api.EmptyPeriodsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Timeline.ListEmptyPeriods(ctx, userID, req.From, req.To)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.EmptyPeriodsResponse{Periods: list}, nil
}

func (s *GRPCServer) AnalyzePatterns(ctx context.Context, req *api.AnalyzePatternsRequest) (*api.InsightsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	insights, err := s.svc.Insights.AnalyzeRecentPatterns(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.InsightsResponse{Insights: insights}, nil
}

func exportOptions(req *api.ExportRequest) services.ExportOptions {
	return services.ExportOptions{From: req.From, To: req.To, IncludeEmptyPeriods: req.IncludeEmptyPeriods}
}

func (s *GRPCServer) Export(ctx context.Context, req *api.ExportRequest) (*api.ExportResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.svc.Export.Export(ctx, userID, exportOptions(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ExportResponse{Document: doc}, nil
}

func (s *GRPCServer) ExportToStorage(ctx context.Context, req *api.ExportRequest) (*api.ExportLinkResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	link, err := s.svc.Export.ExportToStorage(ctx, userID, exportOptions(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ExportLinkResponse{Key: link.Key, URL: link.URL, ExpiresAt: link.ExpiresAt}, nil
}
