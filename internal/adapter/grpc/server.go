package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/auth"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/fintrack-backend/internal/usecase/investment"
	"github.com/simaogato/fintrack-backend/internal/usecase/transaction"
)

// Server implements the AnalyticsService gRPC server
type Server struct {
	TransactionService *transaction.TransactionService
	InvestmentService  *investment.InvestmentService
	DashboardService   *dashboard.DashboardService
}

var _ AnalyticsServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	transactionService *transaction.TransactionService,
	investmentService *investment.InvestmentService,
	dashboardService *dashboard.DashboardService,
) *Server {
	return &Server{
		TransactionService: transactionService,
		InvestmentService:  investmentService,
		DashboardService:   dashboardService,
	}
}

// GetDashboardStats handles the GetDashboardStats RPC
func (s *Server) GetDashboardStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
	}

	stats, err := s.DashboardService.GetDashboardStats(ctx, userID)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	recent := make([]interface{}, 0, len(stats.Transactions.Recent))
	for _, tx := range stats.Transactions.Recent {
		recent = append(recent, transactionToMap(tx))
	}

	byCategory := make([]interface{}, 0, len(stats.Investments.ByCategory))
	for _, ct := range stats.Investments.ByCategory {
		byCategory = append(byCategory, map[string]interface{}{
			"category": ct.Category,
			"name":     ct.Name,
			"total":    ct.Total.String(),
		})
	}

	return toStruct(map[string]interface{}{
		"transactions": map[string]interface{}{
			"income":  stats.Transactions.Income.String(),
			"expense": stats.Transactions.Expense.String(),
			"recent":  recent,
		},
		"investments": map[string]interface{}{
			"total":      stats.Investments.Total.String(),
			"byCategory": byCategory,
		},
	})
}

// GetTransactionStats handles the GetTransactionStats RPC.
// The request may carry startDate and endDate string fields.
func (s *Server) GetTransactionStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
	}

	dateRange, err := dateRangeFromRequest(req)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	totals, err := s.TransactionService.Stats(ctx, userID, dateRange)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	return toStruct(map[string]interface{}{"stats": groupTotals(totals, "type")})
}

// GetInvestmentStats handles the GetInvestmentStats RPC
func (s *Server) GetInvestmentStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgUnauthenticated)
	}

	dateRange, err := dateRangeFromRequest(req)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	totals, err := s.InvestmentService.Stats(ctx, userID, dateRange)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	return toStruct(map[string]interface{}{"stats": groupTotals(totals, "category")})
}

// Helper functions

func dateRangeFromRequest(req *structpb.Struct) (domain.DateRange, error) {
	fields := req.GetFields()
	return domain.ParseDateRange(
		fields["startDate"].GetStringValue(),
		fields["endDate"].GetStringValue(),
	)
}

func groupTotals(totals []domain.GroupTotal, keyName string) []interface{} {
	out := make([]interface{}, 0, len(totals))
	for _, t := range totals {
		out = append(out, map[string]interface{}{
			keyName: t.Key,
			"total": t.Total.String(),
			"count": t.Count,
		})
	}
	return out
}

func transactionToMap(tx *domain.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":          tx.ID.String(),
		"type":        string(tx.Type),
		"amount":      tx.Amount.String(),
		"category":    tx.Category,
		"description": tx.Description,
		"date":        tx.Date.Format(time.RFC3339Nano),
	}
}

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors.
// Unknown errors are logged and reported without detail.
func mapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrStoreTimeout):
		return status.Error(codes.Unavailable, "service temporarily unavailable")
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Message)
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, msgUnauthenticated)
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}

	zerolog.Ctx(ctx).Error().Err(err).Msg("rpc failed")

	if errors.Is(err, domain.ErrAggregationFailed) {
		return status.Error(codes.Internal, "failed to compute dashboard stats")
	}
	return status.Error(codes.Internal, "internal error")
}

// Service description. The payloads are protobuf well-known types, so no
// generated code is needed. The matching file descriptor is registered in
// descriptor.go for reflection.

// AnalyticsServiceName is the fully qualified gRPC service name
const AnalyticsServiceName = "fintrack.v1.AnalyticsService"

const (
	methodGetDashboardStats   = "/" + AnalyticsServiceName + "/GetDashboardStats"
	methodGetTransactionStats = "/" + AnalyticsServiceName + "/GetTransactionStats"
	methodGetInvestmentStats  = "/" + AnalyticsServiceName + "/GetInvestmentStats"
)

// AnalyticsServiceServer is the server API for the AnalyticsService
type AnalyticsServiceServer interface {
	GetDashboardStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetTransactionStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetInvestmentStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterAnalyticsServiceServer registers srv on s
func RegisterAnalyticsServiceServer(s grpc.ServiceRegistrar, srv AnalyticsServiceServer) {
	s.RegisterService(&analyticsServiceDesc, srv)
}

var analyticsServiceDesc = grpc.ServiceDesc{
	ServiceName: AnalyticsServiceName,
	HandlerType: (*AnalyticsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDashboardStats", Handler: getDashboardStatsHandler},
		{MethodName: "GetTransactionStats", Handler: getTransactionStatsHandler},
		{MethodName: "GetInvestmentStats", Handler: getInvestmentStatsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: analyticsProtoFile,
}

func getDashboardStatsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServiceServer).GetDashboardStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetDashboardStats}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServiceServer).GetDashboardStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getTransactionStatsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServiceServer).GetTransactionStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetTransactionStats}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServiceServer).GetTransactionStats(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getInvestmentStatsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServiceServer).GetInvestmentStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetInvestmentStats}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServiceServer).GetInvestmentStats(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
