package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Provider bundles the OTEL trace and metric pipelines with a single
// shutdown hook.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	conn           *grpc.ClientConn
}

// InitProvider configures global OTEL providers exporting to the OTLP gRPC
// endpoint. The dial is non-blocking: an unreachable collector never delays
// startup, spans simply fail to export until it appears.
func InitProvider(ctx context.Context, endpoint, serviceName, serviceVersion string, useInsecure bool) (*Provider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("building OTEL resource: %w", err)
	}

	var dialOpts []grpc.DialOption
	if useInsecure {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	// One gRPC connection shared by both exporters.
	conn, err := grpc.NewClient(endpoint, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP gRPC client: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return &Provider{tracerProvider: tp, meterProvider: mp, conn: conn}, nil
}

// Shutdown flushes pending exports and closes the connection. Export
// failures are swallowed: an unreachable collector must not turn a clean
// process exit into an error. Only conn.Close is propagated since it
// indicates an OS resource leak.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.meterProvider.Shutdown(ctx)  //nolint:errcheck
	p.tracerProvider.Shutdown(ctx) //nolint:errcheck
	return p.conn.Close()
}
