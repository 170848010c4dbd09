package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	"github.com/gorilla/mux"
	"github.com/karansingh008/Tourizio/casbinAuthorization"
	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/handlers"
	"github.com/karansingh008/Tourizio/mail"
	application "github.com/karansingh008/Tourizio/service"
	"github.com/karansingh008/Tourizio/startup/config"
	"github.com/karansingh008/Tourizio/storage"
	"github.com/karansingh008/Tourizio/store"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const (
	LogFilePath = "/app/logs/tourizio.log"
)

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Data["id"] = generateUniqueID()

	msg := fmt.Sprintf("[%s] [%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Data["id"],
		entry.Message,
	)

	return []byte(msg), nil
}

func generateUniqueID() string {
	return fmt.Sprintf("ID-%d", time.Now().UnixNano())
}

func initLogger() {
	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(15*time.Minute),
	)
	if err != nil {
		Logger.Fatalf("Failed to create rotatelogs hook: %v", err)
	}
	Logger.SetOutput(writer)

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {

	initLogger()

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	mongoClient := server.initMongoClient(httpClient)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		err := mongoClient.Disconnect(ctx)
		if err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}(mongoClient, context.Background())

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("tourizio")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	redisClient := server.initRedisClient()
	sessionCache := server.initSessionCache(redisClient, tracer)
	userStore := server.initUserStore(mongoClient, tracer)
	bookingStore := server.initBookingStore(mongoClient, tracer)

	fileStorage := server.initFileStorage(tracer)
	defer fileStorage.Close()

	mailer := server.initMailer(tracer)

	authService := application.NewAuthService(userStore, sessionCache, tracer)
	profileService := application.NewProfileService(userStore, sessionCache, mailer, fileStorage, tracer)
	bookingService := application.NewBookingService(bookingStore, tracer)

	authHandler := handlers.NewAuthHandler(authService, tracer)
	profileHandler := handlers.NewProfileHandler(profileService, fileStorage, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, sessionCache, tracer)

	server.start(sessionCache, authHandler, profileHandler, bookingHandler)
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	client, err := store.GetClientWithHTTPConfig(server.config.TourizioDBHost, server.config.TourizioDBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.CacheHost, server.config.CachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initSessionCache(client *redis.Client, tracer trace.Tracer) domain.SessionCache {
	return store.NewSessionRedisCache(client, tracer)
}

func (server *Server) initUserStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	return store.NewUserMongoDBStore(client, tracer)
}

func (server *Server) initBookingStore(client *mongo.Client, tracer trace.Tracer) domain.BookingStore {
	return store.NewBookingMongoDBStore(client, tracer)
}

func (server *Server) initFileStorage(tracer trace.Tracer) *storage.FileStorage {
	fileStorage, err := storage.New(Logger, tracer)
	if err != nil {
		log.Fatal(err)
	}
	if err := fileStorage.CreateDirectoriesStart(); err != nil {
		log.Println(err)
	}
	return fileStorage
}

func (server *Server) initMailer(tracer trace.Tracer) domain.MailDispatcher {
	if server.config.MailMode == "smtp" {
		port, err := strconv.Atoi(server.config.SMTPPort)
		if err != nil {
			log.Fatalf("Invalid SMTP port: %v", err)
		}
		return mail.NewSMTPMailer(server.config.SMTPHost, port, server.config.SMTPEmail, server.config.SMTPPassword, tracer)
	}
	return mail.NewConsoleMailer()
}

func (server *Server) start(cache domain.SessionCache, authHandler *handlers.AuthHandler, profileHandler *handlers.ProfileHandler, bookingHandler *handlers.BookingHandler) {
	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)

	authenticated := router.NewRoute().Subrouter()
	authenticated.Use(handlers.SessionMiddleware(cache))

	authHandler.Init(router, authenticated)
	profileHandler.Init(router, authenticated)
	bookingHandler.Init(router, authenticated)

	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: casbinAuthorization.CasbinMiddleware(enforcer, Logger)(router),
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("tourizio"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
