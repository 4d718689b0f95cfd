package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/database/postgres"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/api"
	"github.com/vfg2006/farm-market-api/internal/config"
	"github.com/vfg2006/farm-market-api/internal/scheduler"
	"github.com/vfg2006/farm-market-api/internal/usecases/analytics"
	"github.com/vfg2006/farm-market-api/internal/usecases/authenticating"
	"github.com/vfg2006/farm-market-api/internal/usecases/catalog"
	"github.com/vfg2006/farm-market-api/internal/usecases/forum"
	"github.com/vfg2006/farm-market-api/internal/usecases/ordering"
	"github.com/vfg2006/farm-market-api/internal/usecases/translating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	cartRepo := repository.NewCartRepository(pgConn)
	forumRepo := repository.NewForumRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	catalogService := catalog.NewService(productRepo)
	cartService := ordering.NewService(cartRepo, orderRepo, productRepo)
	orderService := ordering.NewOrderService(orderRepo)
	analyticsService := analytics.NewService(orderRepo, productRepo)
	forumService := forum.NewService(forumRepo)

	translationClient := translating.NewClient(cfg)
	translationService := translating.NewService(
		translationClient,
		translating.NewMemoryCache(),
		cfg.Translation.Enabled,
	)

	// Inicializa o agendador de pré-aquecimento dos snapshots de vendas
	analyticsSyncService := scheduler.NewAnalyticsSnapshotSyncService(
		userRepo,
		analyticsService,
		cfg,
	)

	if err := analyticsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de analytics")
	} else {
		logrus.Info("Agendador de snapshots de analytics iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		catalogService,
		cartService,
		orderService,
		analyticsService,
		forumService,
		translationService,
		analyticsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
