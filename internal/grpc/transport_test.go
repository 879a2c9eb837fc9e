package grpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	scoringgrpc "github.com/godilite/presentation-scoring/internal/grpc"
	"github.com/godilite/presentation-scoring/internal/rubric"
	"github.com/godilite/presentation-scoring/internal/service"
	"github.com/godilite/presentation-scoring/internal/service/mocks"
	"github.com/godilite/presentation-scoring/pkg/grpc/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T, opts ...server.Option) (*scoringgrpc.Client, *grpc.ClientConn) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	lis := bufconn.Listen(1024 * 1024)

	opts = append([]server.Option{server.WithListener(lis), server.WithLogger(logger), server.WithLogging(true)}, opts...)
	srv, err := server.New(opts...)
	require.NoError(t, err)

	svc := service.NewEvaluationService(&mocks.MemoryEvaluationRepository{}, rubric.Default(), logger)
	handlers := scoringgrpc.NewGRPCHandlers(svc, logger)
	srv.RegisterServiceWithHealth(scoringgrpc.ServiceName, func(s *grpc.Server) {
		scoringgrpc.RegisterPresentationScoringServer(s, handlers)
	})
	srv.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return scoringgrpc.NewClient(conn), conn
}

func TestTransportScoringFlow(t *testing.T) {
	client, conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: scoringgrpc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)

	rub, err := client.ListCriteria(ctx)
	require.NoError(t, err)
	assert.Len(t, rub.Criteria, 5)
	assert.Equal(t, 100.0, rub.TotalWeight)

	submit, err := client.SubmitEvaluation(ctx)
	require.NoError(t, err)
	assert.False(t, submit.Submitted)
	assert.Equal(t, service.SubmitNotice, submit.Notice)

	_, err = client.SetPresenter(ctx, &scoringgrpc.SetPresenterRequest{Presenter: "Alice Johnson"})
	require.NoError(t, err)
	for id, v := range map[int]string{1: "8", 2: "9", 3: "7", 4: "8", 5: "9"} {
		_, err := client.SetScore(ctx, &scoringgrpc.SetScoreRequest{CriterionID: id, Value: v})
		require.NoError(t, err)
	}
	pending, err := client.SetFeedback(ctx, &scoringgrpc.SetFeedbackRequest{Feedback: "Excellent delivery"})
	require.NoError(t, err)
	assert.Equal(t, 8.2, pending.Preview)
	assert.Equal(t, 9.0, pending.Scores[2])

	preview, err := client.PreviewScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.2, preview.Score)

	submit, err = client.SubmitEvaluation(ctx)
	require.NoError(t, err)
	require.True(t, submit.Submitted)
	assert.Equal(t, "Alice Johnson", submit.Evaluation.Presenter)
	assert.Equal(t, "Excellent delivery", submit.Evaluation.Feedback)

	pending, err = client.GetPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending.Presenter)
	assert.Empty(t, pending.Scores)

	list, err := client.ListEvaluations(ctx)
	require.NoError(t, err)
	require.Len(t, list.Evaluations, 1)
	assert.Len(t, list.Evaluations[0].Criteria, 5)

	results, err := client.GetResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Summary.TotalEvaluations)
	assert.Equal(t, 8.2, results.Summary.HighestScore)
	require.Len(t, results.CategoryAverages, 5)
	assert.Equal(t, 8.0, results.CategoryAverages[0].Average)
	assert.Equal(t, 10.0, results.CategoryAverages[0].FullMark)
}

func TestTransportRubricEditing(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	added, err := client.AddCriterion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, added.Criterion.ID)
	assert.Equal(t, "Total weight is 110%, should equal 100%", added.Rubric.WeightWarning)

	updated, err := client.UpdateCriterion(ctx, &scoringgrpc.UpdateCriterionRequest{ID: 6, Field: "maxScore", Value: "abc"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, updated.Criterion.MaxScore)

	_, err = client.UpdateCriterion(ctx, &scoringgrpc.UpdateCriterionRequest{ID: 6, Field: "colour", Value: "red"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	rub, err := client.RemoveCriterion(ctx, &scoringgrpc.RemoveCriterionRequest{ID: 6})
	require.NoError(t, err)
	assert.Len(t, rub.Criteria, 5)
	assert.Empty(t, rub.WeightWarning)

	_, err = client.RemoveCriterion(ctx, &scoringgrpc.RemoveCriterionRequest{ID: 6})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.SetScore(ctx, &scoringgrpc.SetScoreRequest{CriterionID: 6, Value: "3"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestReflectionListsServiceWithoutDescriptor(t *testing.T) {
	_, conn := startServer(t, server.WithReflection(true))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := reflectionpb.NewServerReflectionClient(conn).ServerReflectionInfo(ctx)
	require.NoError(t, err)
	defer func() { _ = stream.CloseSend() }()

	require.NoError(t, stream.Send(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_ListServices{ListServices: "*"},
	}))
	resp, err := stream.Recv()
	require.NoError(t, err)
	var names []string
	for _, svc := range resp.GetListServicesResponse().GetService() {
		names = append(names, svc.GetName())
	}
	assert.Contains(t, names, scoringgrpc.ServiceName)
	assert.Contains(t, names, "grpc.health.v1.Health")

	require.NoError(t, stream.Send(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: scoringgrpc.ServiceName},
	}))
	resp, err = stream.Recv()
	require.NoError(t, err)
	require.NotNil(t, resp.GetErrorResponse())
	assert.Equal(t, int32(codes.NotFound), resp.GetErrorResponse().GetErrorCode())
}
