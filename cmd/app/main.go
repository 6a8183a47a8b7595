package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"store-service/configs"
	"store-service/internal/comment"
	"store-service/internal/imagegen"
	"store-service/internal/like"
	"store-service/internal/mail"
	"store-service/internal/migrate"
	"store-service/internal/post"
	"store-service/internal/security"
	"store-service/internal/shared/db"
	"store-service/internal/shared/httpx"
	"store-service/internal/storage/s3"
	"store-service/internal/task"
	"store-service/internal/upload"
	"store-service/internal/user"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("store-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	tp := trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}
	cfg := configs.LoadConfig()

	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	store := db.Open(cfg)
	if err := migrate.AutoMigrateAll(store); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	objects, err := s3.New(s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		log.Fatalf("s3: %v", err)
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		log.Fatalf("s3 ensure bucket: %v", err)
	}

	tokens := security.NewTokens(cfg.JWTSecret, cfg.AccessTokenMins, cfg.ConfirmTokenMins)
	mailer := mail.NewClient(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	generator := imagegen.NewClient(cfg.ImageGenURL, cfg.ImageGenAPIKey)
	runner := task.NewRunner(prometheus.DefaultRegisterer)

	userRepo := user.NewRepository(store.Base)
	userSvc := user.NewService(userRepo)

	postRepo := post.NewRepository(store.Base)
	commentRepo := comment.NewRepository(store.Base)
	commentSvc := comment.NewService(commentRepo, postRepo)
	likeRepo := like.NewRepository(store.Base)
	likeSvc := like.NewService(likeRepo, postRepo)
	postSvc := post.NewService(postRepo, commentSvc, generator, mailer)

	uploadSvc := upload.NewService(objects)

	uh := user.NewHandler(userSvc, tokens, mailer, runner, cfg.BaseURL)
	ph := post.NewHandler(postSvc, runner, cfg.BaseURL)
	ch := comment.NewHandler(commentSvc)
	lh := like.NewHandler(likeSvc)
	fh := upload.NewHandler(uploadSvc)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("POST /register", httpx.Wrap(uh.Register))
	mux.Handle("POST /token", httpx.Wrap(uh.Token))
	mux.Handle("GET /confirm/{token}", httpx.Wrap(uh.Confirm))

	mux.Handle("GET /post", httpx.Wrap(ph.List))
	mux.Handle("GET /post/{post_id}", httpx.Wrap(ph.GetByID))
	mux.Handle("GET /post/{post_id}/comment", httpx.Wrap(ch.ListByPost))

	mux.Handle("POST /upload", httpx.Wrap(fh.Upload))

	resolver := user.Resolver{Svc: userSvc}
	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(tokens, resolver, h))
	}
	protect("POST /post", httpx.Wrap(ph.Create))
	protect("POST /comment", httpx.Wrap(ch.Create))
	protect("POST /like", httpx.Wrap(lh.Create))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(c.Handler(mux), "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("store-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
