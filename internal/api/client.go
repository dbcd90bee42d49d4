package api

import (
	"context"

	"google.golang.org/grpc"
)

// ConcienciaClient is the typed client stub for ConcienciaService. Calls are
// made with the JSON content-subtype.
type ConcienciaClient struct {
	cc grpc.ClientConnInterface
}

func NewConcienciaClient(cc grpc.ClientConnInterface) *ConcienciaClient {
	return &ConcienciaClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ConcienciaClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *ConcienciaClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *ConcienciaClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *ConcienciaClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *ConcienciaClient) CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	return invoke[EntryResponse](ctx, c.cc, MethodCreateEntry, in, opts)
}

func (c *ConcienciaClient) GetEntry(ctx context.Context, in *GetEntryRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	return invoke[EntryResponse](ctx, c.cc, MethodGetEntry, in, opts)
}

func (c *ConcienciaClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*EntriesResponse, error) {
	return invoke[EntriesResponse](ctx, c.cc, MethodListEntries, in, opts)
}

func (c *ConcienciaClient) ListIntentions(ctx context.Context, in *ListIntentionsRequest, opts ...grpc.CallOption) (*EntriesResponse, error) {
	return invoke[EntriesResponse](ctx, c.cc, MethodListIntentions, in, opts)
}

func (c *ConcienciaClient) UpdateEntryState(ctx context.Context, in *UpdateEntryStateRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	return invoke[EntryResponse](ctx, c.cc, MethodUpdateEntryState, in, opts)
}

func (c *ConcienciaClient) AddNote(ctx context.Context, in *AddNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error) {
	return invoke[NoteResponse](ctx, c.cc, MethodAddNote, in, opts)
}

func (c *ConcienciaClient) ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*NotesResponse, error) {
	return invoke[NotesResponse](ctx, c.cc, MethodListNotes, in, opts)
}

func (c *ConcienciaClient) NoteExists(ctx context.Context, in *NoteExistsRequest, opts ...grpc.CallOption) (*NoteExistsResponse, error) {
	return invoke[NoteExistsResponse](ctx, c.cc, MethodNoteExists, in, opts)
}

func (c *ConcienciaClient) DailyTimeline(ctx context.Context, in *DailyTimelineRequest, opts ...grpc.CallOption) (*DailyTimelineResponse, error) {
	return invoke[DailyTimelineResponse](ctx, c.cc, MethodDailyTimeline, in, opts)
}

func (c *ConcienciaClient) AnnotateEmptyPeriod(ctx context.Context, in *AnnotateEmptyPeriodRequest, opts ...grpc.CallOption) (*EmptyPeriodResponse, error) {
	return invoke[EmptyPeriodResponse](ctx, c.cc, MethodAnnotateEmptyPeriod, in, opts)
}

func (c *ConcienciaClient) ListEmptyPeriods(ctx context.Context, in *ListEmptyPeriodsRequest, opts ...grpc.CallOption) (*EmptyPeriodsResponse, error) {
	return invoke[EmptyPeriodsResponse](ctx, c.cc, MethodListEmptyPeriods, in, opts)
}

func (c *ConcienciaClient) AnalyzePatterns(ctx context.Context, in *AnalyzePatternsRequest, opts ...grpc.CallOption) (*InsightsResponse, error) {
	return invoke[InsightsResponse](ctx, c.cc, MethodAnalyzePatterns, in, opts)
}

func (c *ConcienciaClient) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, MethodExport, in, opts)
}

func (c *ConcienciaClient) ExportToStorage(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportLinkResponse, error) {
	return invoke[ExportLinkResponse](ctx, c.cc, MethodExportToStorage, in, opts)
}
