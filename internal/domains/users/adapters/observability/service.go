package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

const tracerName = "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) *Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) LoadUserByUsername(ctx context.Context, username string) (*userdomain.Credentials, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.LoadUserByUsername", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	return s.inner.LoadUserByUsername(ctx, username)
}

func (s *Service) Authenticated(ctx context.Context) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticated")
	defer span.End()
	user, err := s.inner.Authenticated(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

func (s *Service) GetMe(ctx context.Context) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetMe")
	defer span.End()
	user, err := s.inner.GetMe(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load current user")
	}
	return user, nil
}

func (s *Service) IssueToken(ctx context.Context, username, password string) (security.Token, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.IssueToken", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	token, err := s.inner.IssueToken(ctx, username, password)
	if err != nil {
		s.metrics.recordLoginFailure(ctx)
		return security.Token{}, s.handleError(ctx, span, err, "token request rejected", slog.String("username", username))
	}
	s.metrics.recordLogin(ctx)
	s.logInfo(ctx, "token issued", slog.String("username", username))
	return token, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	logins        metric.Int64Counter
	loginFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of issued access tokens"))
	failures, _ := m.Int64Counter("users.service.login_failures", metric.WithDescription("Number of rejected token requests"))
	return serviceMetrics{logins: logins, loginFailures: failures}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLoginFailure(ctx context.Context) {
	if m.loginFailures != nil {
		m.loginFailures.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
