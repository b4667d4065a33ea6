// Package tracing 提供基于OpenTelemetry的分布式追踪框架
//
// # 核心概念
//
// 1. **Trace（追踪）**：一个完整的请求链路
//   - 示例:一次借书请求从HTTP入口到库存扣减、记录创建的全过程
//
// 2. **Span（跨度）**：一个操作单元
//   - 包含:操作名称、开始时间、结束时间、耗时、状态
//
// 3. **SpanContext（上下文）**：跨服务传递的元数据
//   - TraceID:标识整个请求链路
//   - SpanID:标识当前操作
//   - ParentSpanID:标识父操作(构建调用树)
//
// # 使用示例
//
//	// 1. 初始化全局Tracer Provider
//	shutdown, err := tracing.InitTracer("library-api", "localhost:4317", 1.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	// 2. 在业务代码中使用
//	func CreateLoan(ctx context.Context) error {
//	    ctx, span := tracing.StartSpan(ctx, "library-api", "CreateLoan")
//	    defer span.End()
//
//	    span.SetAttributes(attribute.Int("book_id", 7))
//
//	    if err := admitLoan(ctx); err != nil {
//	        span.RecordError(err)
//	        return err
//	    }
//	    return nil
//	}
//
// # 要点
//
// 1. Span命名用操作名,动态值放属性:CreateLoan(✅) vs CreateLoan-123(❌)
// 2. 必须用返回的ctx调用下游函数,否则无法构建调用树
// 3. 总是defer span.End(),程序退出前调用shutdown()刷新剩余Span
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点（如localhost:4317）
//   - sampleRatio: 采样率，>=1时全量采样，生产环境建议小比例（如0.01）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用,确保未发送的Span刷新）
//
// 设计要点：
// 1. 使用OTLP协议而非Jaeger原生协议：厂商中立,可无缝切换后端
// 2. BatchSpanProcessor批量发送Span(性能优于SimpleSpanProcessor)
func InitTracer(serviceName, endpoint string, sampleRatio float64) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（资源属性,附加到所有Span,便于在UI中筛选）
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 采样策略
	sampler := sdktrace.AlwaysSample()
	if sampleRatio > 0 && sampleRatio < 1 {
		sampler = sdktrace.TraceIDRatioBased(sampleRatio)
	}

	// 4. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 5. 设置全局TracerProvider
	// 业务代码无需传递Provider,直接使用otel.Tracer()获取
	otel.SetTracerProvider(tp)

	// 6. 设置全局上下文传播器
	// W3C Trace Context在HTTP Header(traceparent)中传递TraceID/SpanID
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// 7. 返回关闭函数
	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 返回包含新Span的Context(传递给下游调用)与Span对象。
// 如果ctx包含父Span,新Span会自动成为子Span,否则成为根Span。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
//
//	traceID := tracing.ExtractTraceID(ctx)
//	log.Printf("TraceID=%s, 借阅创建成功, LoanID=%d", traceID, loanID)
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
