// Package scheduler contém os serviços de agendamento para pré-aquecimento de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/config"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/internal/usecases/analytics"
)

type AnalyticsSnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SyncStatus descreve o estado corrente do cron para o endpoint administrativo
type SyncStatus struct {
	Running             bool       `json:"running"`
	Enabled             bool       `json:"enabled"`
	CronSchedule        string     `json:"cron_schedule"`
	LastSyncStartedAt   *time.Time `json:"last_sync_started_at,omitempty"`
	LastSyncCompletedAt *time.Time `json:"last_sync_completed_at,omitempty"`
	FarmersProcessed    int        `json:"farmers_processed"`
	FarmersFailed       int        `json:"farmers_failed"`
}

// AnalyticsSnapshotSyncService recomputa periodicamente os snapshots de vendas
// de todos os agricultores, deixando o primeiro acesso ao painel do dia quente
type AnalyticsSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	userRepo            repository.UserRepository
	analyzer            analytics.Analyzer
	config              AnalyticsSnapshotSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	farmersProcessed    int
	farmersFailed       int
}

func NewAnalyticsSnapshotSyncService(
	userRepo repository.UserRepository,
	analyzer analytics.Analyzer,
	cfg *config.Config,
) *AnalyticsSnapshotSyncService {
	syncConfig := AnalyticsSnapshotSyncConfig{
		CronSchedule: cfg.AnalyticsSync.CronSchedule, // Default: 5h da manhã todos os dias
		SyncEnabled:  cfg.AnalyticsSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador de snapshots de analytics carregada")

	return &AnalyticsSnapshotSyncService{
		scheduler: scheduler,
		userRepo:  userRepo,
		analyzer:  analyzer,
		config:    syncConfig,
	}
}

func (s *AnalyticsSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de snapshots de analytics desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de snapshots de analytics")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SyncSnapshots(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização de snapshots de analytics")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots de analytics: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de snapshots de analytics")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncSnapshots recomputa o snapshot de cada agricultor cadastrado. Cada passe
// parte dos pedidos e do catálogo correntes, nunca de um snapshot anterior.
func (s *AnalyticsSnapshotSyncService) SyncSnapshots() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Sincronização de snapshots de analytics já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de snapshots de analytics")

	farmers, err := s.userRepo.ListByRole(domain.RoleFarmer)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar agricultores para sincronização de snapshots")
		return err
	}

	if len(farmers) == 0 {
		logrus.Info("Nenhum agricultor encontrado para sincronização de snapshots")
		return nil
	}

	processed, failed := 0, 0
	for _, farmer := range farmers {
		snapshot, err := s.analyzer.FarmerSnapshot(farmer.ID)
		if err != nil {
			failed++
			logrus.WithError(err).WithField("farmer_id", farmer.ID).
				Error("Erro ao recomputar snapshot do agricultor")
			continue
		}

		processed++
		logrus.WithFields(logrus.Fields{
			"farmer_id":    farmer.ID,
			"total_sales":  snapshot.TotalSales,
			"total_orders": snapshot.TotalOrders,
		}).Debug("Snapshot do agricultor recomputado")
	}

	s.syncMutex.Lock()
	s.farmersProcessed = processed
	s.farmersFailed = failed
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"processed": processed,
		"failed":    failed,
	}).Info("Sincronização de snapshots de analytics concluída")

	return nil
}

// RunManually dispara um passe fora do horário agendado, via endpoint admin
func (s *AnalyticsSnapshotSyncService) RunManually() error {
	logrus.Info("Sincronização manual de snapshots de analytics solicitada")
	return s.SyncSnapshots()
}

func (s *AnalyticsSnapshotSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SyncStatus{
		Running:          s.syncRunning,
		Enabled:          s.config.SyncEnabled,
		CronSchedule:     s.config.CronSchedule,
		FarmersProcessed: s.farmersProcessed,
		FarmersFailed:    s.farmersFailed,
	}

	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastSyncStartedAt = &startedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastSyncCompletedAt = &completedAt
	}

	return status
}
