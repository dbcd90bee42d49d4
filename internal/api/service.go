package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "conciencia.v1.ConcienciaService"

// Full method names, as seen by interceptors.
const (
	MethodPing                = "/" + ServiceName + "/Ping"
	MethodRegister            = "/" + ServiceName + "/Register"
	MethodLogin               = "/" + ServiceName + "/Login"
	MethodRefreshToken        = "/" + ServiceName + "/RefreshToken"
	MethodCreateEntry         = "/" + ServiceName + "/CreateEntry"
	MethodGetEntry            = "/" + ServiceName + "/GetEntry"
	MethodListEntries         = "/" + ServiceName + "/ListEntries"
	MethodListIntentions      = "/" + ServiceName + "/ListIntentions"
	MethodUpdateEntryState    = "/" + ServiceName + "/UpdateEntryState"
	MethodAddNote             = "/" + ServiceName + "/AddNote"
	MethodListNotes           = "/" + ServiceName + "/ListNotes"
	MethodNoteExists          = "/" + ServiceName + "/NoteExists"
	MethodDailyTimeline       = "/" + ServiceName + "/DailyTimeline"
	MethodAnnotateEmptyPeriod = "/" + ServiceName + "/AnnotateEmptyPeriod"
	MethodListEmptyPeriods    = "/" + ServiceName + "/ListEmptyPeriods"
	MethodAnalyzePatterns     = "/" + ServiceName + "/AnalyzePatterns"
	MethodExport              = "/" + ServiceName + "/Export"
	MethodExportToStorage     = "/" + ServiceName + "/ExportToStorage"
)

// ConcienciaServer is implemented by the server transport.
type ConcienciaServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	CreateEntry(context.Context, *CreateEntryRequest) (*EntryResponse, error)
	GetEntry(context.Context, *GetEntryRequest) (*EntryResponse, error)
	ListEntries(context.Context, *ListEntriesRequest) (*EntriesResponse, error)
	ListIntentions(context.Context, *ListIntentionsRequest) (*EntriesResponse, error)
	UpdateEntryState(context.Context, *UpdateEntryStateRequest) (*EntryResponse, error)
	AddNote(context.Context, *AddNoteRequest) (*NoteResponse, error)
	ListNotes(context.Context, *ListNotesRequest) (*NotesResponse, error)
	NoteExists(context.Context, *NoteExistsRequest) (*NoteExistsResponse, error)
	DailyTimeline(context.Context, *DailyTimelineRequest) (*DailyTimelineResponse, error)
	AnnotateEmptyPeriod(context.Context, *AnnotateEmptyPeriodRequest) (*EmptyPeriodResponse, error)
	ListEmptyPeriods(context.Context, *ListEmptyPeriodsRequest) (*EmptyPeriodsResponse, error)
	AnalyzePatterns(context.Context, *AnalyzePatternsRequest) (*InsightsResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
	ExportToStorage(context.Context, *ExportRequest) (*ExportLinkResponse, error)
}

// RegisterConcienciaServer registers srv on s.
func RegisterConcienciaServer(s grpc.ServiceRegistrar, srv ConcienciaServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(ConcienciaServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ConcienciaServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ConcienciaServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes conciencia.v1.ConcienciaService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConcienciaServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, ConcienciaServer.Ping)},
		{MethodName: "Register", Handler: unary(MethodRegister, ConcienciaServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, ConcienciaServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, ConcienciaServer.RefreshToken)},
		{MethodName: "CreateEntry", Handler: unary(MethodCreateEntry, ConcienciaServer.CreateEntry)},
		{MethodName: "GetEntry", Handler: unary(MethodGetEntry, ConcienciaServer.GetEntry)},
		{MethodName: "ListEntries", Handler: unary(MethodListEntries, ConcienciaServer.ListEntries)},
		{MethodName: "ListIntentions", Handler: unary(MethodListIntentions, ConcienciaServer.ListIntentions)},
		{MethodName: "UpdateEntryState", Handler: unary(MethodUpdateEntryState, ConcienciaServer.UpdateEntryState)},
		{MethodName: "AddNote", Handler: unary(MethodAddNote, ConcienciaServer.AddNote)},
		{MethodName: "ListNotes", Handler: unary(MethodListNotes, ConcienciaServer.ListNotes)},
		{MethodName: "NoteExists", Handler: unary(MethodNoteExists, ConcienciaServer.NoteExists)},
		{MethodName: "DailyTimeline", Handler: unary(MethodDailyTimeline, ConcienciaServer.DailyTimeline)},
		{MethodName: "AnnotateEmptyPeriod", Handler: unary(MethodAnnotateEmptyPeriod, ConcienciaServer.AnnotateEmptyPeriod)},
		{MethodName: "ListEmptyPeriods", Handler: unary(MethodListEmptyPeriods, ConcienciaServer.ListEmptyPeriods)},
		{MethodName: "AnalyzePatterns", Handler: unary(MethodAnalyzePatterns, ConcienciaServer.AnalyzePatterns)},
		{MethodName: "Export", Handler: unary(MethodExport, ConcienciaServer.Export)},
		{MethodName: "ExportToStorage", Handler: unary(MethodExportToStorage, ConcienciaServer.ExportToStorage)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/api/service.go",
}
