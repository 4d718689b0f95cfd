package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/farm-market-api/infrastructure/repository/mocks"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type stubAnalyzer struct {
	snapshots map[int]*domain.AnalyticsSnapshot
	errs      map[int]error
	calls     []int
}

func (a *stubAnalyzer) FarmerSnapshot(farmerID int) (*domain.AnalyticsSnapshot, error) {
	a.calls = append(a.calls, farmerID)
	if err, ok := a.errs[farmerID]; ok {
		return nil, err
	}
	return a.snapshots[farmerID], nil
}

func (a *stubAnalyzer) FarmerDashboard(farmerID int) (*domain.DashboardView, error) {
	return nil, nil
}

func TestSyncSnapshots(t *testing.T) {
	tests := []struct {
		name     string
		analyzer *stubAnalyzer
		setup    func(userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, service *AnalyticsSnapshotSyncService, analyzer *stubAnalyzer, err error)
	}{
		{
			name: "Dois agricultores - ambos recomputados",
			analyzer: &stubAnalyzer{
				snapshots: map[int]*domain.AnalyticsSnapshot{
					1: {FarmerID: 1, TotalSales: 50},
					2: {FarmerID: 2, TotalSales: 8},
				},
			},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().
					ListByRole(domain.RoleFarmer).
					Return([]*domain.User{
						{ID: 1, Role: domain.RoleFarmer},
						{ID: 2, Role: domain.RoleFarmer},
					}, nil)
			},
			validate: func(t *testing.T, service *AnalyticsSnapshotSyncService, analyzer *stubAnalyzer, err error) {
				assert.NoError(t, err)
				assert.Equal(t, []int{1, 2}, analyzer.calls)

				status := service.Status()
				assert.Equal(t, 2, status.FarmersProcessed)
				assert.Equal(t, 0, status.FarmersFailed)
				assert.False(t, status.Running)
				assert.NotNil(t, status.LastSyncStartedAt)
				assert.NotNil(t, status.LastSyncCompletedAt)
			},
		},
		{
			name: "Falha em um agricultor - os demais continuam",
			analyzer: &stubAnalyzer{
				snapshots: map[int]*domain.AnalyticsSnapshot{
					2: {FarmerID: 2, TotalSales: 8},
				},
				errs: map[int]error{1: errors.New("conexão perdida")},
			},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().
					ListByRole(domain.RoleFarmer).
					Return([]*domain.User{
						{ID: 1, Role: domain.RoleFarmer},
						{ID: 2, Role: domain.RoleFarmer},
					}, nil)
			},
			validate: func(t *testing.T, service *AnalyticsSnapshotSyncService, analyzer *stubAnalyzer, err error) {
				assert.NoError(t, err)
				assert.Equal(t, []int{1, 2}, analyzer.calls)

				status := service.Status()
				assert.Equal(t, 1, status.FarmersProcessed)
				assert.Equal(t, 1, status.FarmersFailed)
			},
		},
		{
			name:     "Nenhum agricultor - passe vazio sem erro",
			analyzer: &stubAnalyzer{},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().
					ListByRole(domain.RoleFarmer).
					Return([]*domain.User{}, nil)
			},
			validate: func(t *testing.T, service *AnalyticsSnapshotSyncService, analyzer *stubAnalyzer, err error) {
				assert.NoError(t, err)
				assert.Empty(t, analyzer.calls)
			},
		},
		{
			name:     "Erro ao listar agricultores - erro propagado",
			analyzer: &stubAnalyzer{},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().
					ListByRole(domain.RoleFarmer).
					Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, service *AnalyticsSnapshotSyncService, analyzer *stubAnalyzer, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			tt.setup(userRepo)

			service := &AnalyticsSnapshotSyncService{
				userRepo: userRepo,
				analyzer: tt.analyzer,
				config: AnalyticsSnapshotSyncConfig{
					CronSchedule: "0 5 * * *",
					SyncEnabled:  true,
				},
			}

			err := service.SyncSnapshots()
			tt.validate(t, service, tt.analyzer, err)
		})
	}
}

func TestRunManually_SkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := &AnalyticsSnapshotSyncService{
		userRepo: mocks.NewMockUserRepository(ctrl),
		analyzer: &stubAnalyzer{},
	}

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	// Passe já em execução retorna sem tocar o repositório
	assert.NoError(t, service.RunManually())
}
