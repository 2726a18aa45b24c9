package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/ppiankov/safeharbor/api/safeharbor/v1"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/logging"
	"github.com/ppiankov/safeharbor/internal/metrics"
	"github.com/ppiankov/safeharbor/internal/service"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

// Config holds gRPC server configuration.
type Config struct {
	Port      int
	SitesPath string
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Server implements the safeharbor.v1.Advisor gRPC service.
type Server struct {
	cfg        Config
	svc        *service.Service
	logger     *slog.Logger
	grpcServer *grpc.Server
}

// New creates a gRPC server with the site lists loaded.
func New(cfg Config) (*Server, error) {
	lists, hash, err := sitelist.LoadWithHash(cfg.SitesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load site lists: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	c := classify.New(lists)
	c.SetLists(lists, hash)

	s := &Server{
		cfg:    cfg,
		svc:    service.New(c, cfg.Metrics),
		logger: cfg.Logger,
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.logUnary))
	pb.RegisterAdvisorServer(s.grpcServer, s)
	return s, nil
}

// Service returns the shared request handler, so other front ends serve
// the same lists.
func (s *Server) Service() *service.Service {
	return s.svc
}

// Serve starts the gRPC server on the configured port. Blocks until stopped.
func (s *Server) Serve() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	return s.grpcServer.Serve(lis)
}

// ServeOn starts the gRPC server on the given listener. For testing.
func (s *Server) ServeOn(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// GracefulStop gracefully shuts down the gRPC server.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// ReloadLists re-reads the site lists and swaps them into the classifier.
// Called by the hot-reloader on file change.
func (s *Server) ReloadLists() error {
	lists, hash, err := sitelist.LoadWithHash(s.cfg.SitesPath)
	if err != nil {
		s.cfg.Metrics.ListReload(false)
		return fmt.Errorf("failed to reload site lists: %w", err)
	}
	s.svc.Classifier().SetLists(lists, hash)
	s.cfg.Metrics.ListReload(true)
	return nil
}

// Classify implements the Classify RPC.
func (s *Server) Classify(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.ClassifyRequest
	if err := pb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	v, err := s.svc.Classify(req.URL)
	if err != nil {
		return nil, toStatus(err)
	}
	return pb.Encode(v)
}

// Ask implements the Ask RPC.
func (s *Server) Ask(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.AskRequest
	if err := pb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	a, err := s.svc.Ask(req.Text, req.URL)
	if err != nil {
		return nil, toStatus(err)
	}
	return pb.Encode(a)
}

// CheckField implements the CheckField RPC.
func (s *Server) CheckField(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.CheckFieldRequest
	if err := pb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	fc, err := s.svc.CheckField(req.URL, req.Field)
	if err != nil {
		return nil, toStatus(err)
	}
	return pb.Encode(fc)
}

// Suggest implements the Suggest RPC.
func (s *Server) Suggest(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.SuggestRequest
	if err := pb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return pb.Encode(map[string]any{"suggestions": s.svc.Suggest(req.Query)})
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug("rpc", "method", info.FullMethod, "code", status.Code(err), "duration", time.Since(start))
	return resp, err
}

func toStatus(err error) error {
	if errors.Is(err, service.ErrEmptyURL) || errors.Is(err, service.ErrEmptyText) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
