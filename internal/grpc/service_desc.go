package grpc

import (
	"context"

	"github.com/godilite/presentation-scoring/pkg/grpc/codec"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "scoring.v1.PresentationScoring"

// PresentationScoringServer is the server API for the PresentationScoring service.
type PresentationScoringServer interface {
	ListCriteria(context.Context, *Empty) (*RubricResponse, error)
	AddCriterion(context.Context, *Empty) (*CriterionResponse, error)
	UpdateCriterion(context.Context, *UpdateCriterionRequest) (*CriterionResponse, error)
	RemoveCriterion(context.Context, *RemoveCriterionRequest) (*RubricResponse, error)
	SetPresenter(context.Context, *SetPresenterRequest) (*PendingResponse, error)
	SetScore(context.Context, *SetScoreRequest) (*PendingResponse, error)
	SetFeedback(context.Context, *SetFeedbackRequest) (*PendingResponse, error)
	GetPending(context.Context, *Empty) (*PendingResponse, error)
	PreviewScore(context.Context, *Empty) (*PreviewScoreResponse, error)
	SubmitEvaluation(context.Context, *Empty) (*SubmitEvaluationResponse, error)
	ListEvaluations(context.Context, *Empty) (*ListEvaluationsResponse, error)
	GetResults(context.Context, *Empty) (*ResultsResponse, error)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryMethod[Req, Resp any](name string, call func(PresentationScoringServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			impl := srv.(PresentationScoringServer)
			if interceptor == nil {
				return call(impl, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(impl, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the PresentationScoring service. Messages travel with
// the JSON codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PresentationScoringServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListCriteria", PresentationScoringServer.ListCriteria),
		unaryMethod("AddCriterion", PresentationScoringServer.AddCriterion),
		unaryMethod("UpdateCriterion", PresentationScoringServer.UpdateCriterion),
		unaryMethod("RemoveCriterion", PresentationScoringServer.RemoveCriterion),
		unaryMethod("SetPresenter", PresentationScoringServer.SetPresenter),
		unaryMethod("SetScore", PresentationScoringServer.SetScore),
		unaryMethod("SetFeedback", PresentationScoringServer.SetFeedback),
		unaryMethod("GetPending", PresentationScoringServer.GetPending),
		unaryMethod("PreviewScore", PresentationScoringServer.PreviewScore),
		unaryMethod("SubmitEvaluation", PresentationScoringServer.SubmitEvaluation),
		unaryMethod("ListEvaluations", PresentationScoringServer.ListEvaluations),
		unaryMethod("GetResults", PresentationScoringServer.GetResults),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterPresentationScoringServer(s grpc.ServiceRegistrar, srv PresentationScoringServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the PresentationScoring service with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCriteria(ctx context.Context, opts ...grpc.CallOption) (*RubricResponse, error) {
	return invoke[RubricResponse](ctx, c.cc, "ListCriteria", &Empty{}, opts)
}

func (c *Client) AddCriterion(ctx context.Context, opts ...grpc.CallOption) (*CriterionResponse, error) {
	return invoke[CriterionResponse](ctx, c.cc, "AddCriterion", &Empty{}, opts)
}

func (c *Client) UpdateCriterion(ctx context.Context, in *UpdateCriterionRequest, opts ...grpc.CallOption) (*CriterionResponse, error) {
	return invoke[CriterionResponse](ctx, c.cc, "UpdateCriterion", in, opts)
}

func (c *Client) RemoveCriterion(ctx context.Context, in *RemoveCriterionRequest, opts ...grpc.CallOption) (*RubricResponse, error) {
	return invoke[RubricResponse](ctx, c.cc, "RemoveCriterion", in, opts)
}

func (c *Client) SetPresenter(ctx context.Context, in *SetPresenterRequest, opts ...grpc.CallOption) (*PendingResponse, error) {
	return invoke[PendingResponse](ctx, c.cc, "SetPresenter", in, opts)
}

func (c *Client) SetScore(ctx context.Context, in *SetScoreRequest, opts ...grpc.CallOption) (*PendingResponse, error) {
	return invoke[PendingResponse](ctx, c.cc, "SetScore", in, opts)
}

func (c *Client) SetFeedback(ctx context.Context, in *SetFeedbackRequest, opts ...grpc.CallOption) (*PendingResponse, error) {
	return invoke[PendingResponse](ctx, c.cc, "SetFeedback", in, opts)
}

func (c *Client) GetPending(ctx context.Context, opts ...grpc.CallOption) (*PendingResponse, error) {
	return invoke[PendingResponse](ctx, c.cc, "GetPending", &Empty{}, opts)
}

func (c *Client) PreviewScore(ctx context.Context, opts ...grpc.CallOption) (*PreviewScoreResponse, error) {
	return invoke[PreviewScoreResponse](ctx, c.cc, "PreviewScore", &Empty{}, opts)
}

func (c *Client) SubmitEvaluation(ctx context.Context, opts ...grpc.CallOption) (*SubmitEvaluationResponse, error) {
	return invoke[SubmitEvaluationResponse](ctx, c.cc, "SubmitEvaluation", &Empty{}, opts)
}

func (c *Client) ListEvaluations(ctx context.Context, opts ...grpc.CallOption) (*ListEvaluationsResponse, error) {
	return invoke[ListEvaluationsResponse](ctx, c.cc, "ListEvaluations", &Empty{}, opts)
}

func (c *Client) GetResults(ctx context.Context, opts ...grpc.CallOption) (*ResultsResponse, error) {
	return invoke[ResultsResponse](ctx, c.cc, "GetResults", &Empty{}, opts)
}
