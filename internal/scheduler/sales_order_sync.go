package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-order-assistant/infrastructure/integrator/erp"
	"github.com/vfg2006/sales-order-assistant/internal/config"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
	"github.com/vfg2006/sales-order-assistant/pkg/utils"
)

var ErrSyncInProgress = errors.New("sincronização de pedidos já em andamento")

// SalesOrderMerger é a parte do snapshot store usada pela sincronização
type SalesOrderMerger interface {
	MergeInsert(ctx context.Context, candidates []domain.SalesOrderRecord) (int, error)
}

// SalesOrderSyncConfig representa a configuração do agendador de pedidos de venda
type SalesOrderSyncConfig struct {
	SyncEnabled  bool
	Interval     time.Duration
	CronSchedule string
	StartYear    int
	WindowDelay  time.Duration
}

// WindowReport resume o resultado de uma janela anual
type WindowReport struct {
	Window  string `json:"window"`
	Fetched int    `json:"fetched"`
	Added   int    `json:"added"`
	Error   string `json:"error,omitempty"`
}

// SyncReport resume uma execução completa da sincronização
type SyncReport struct {
	RunID       string         `json:"run_id"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Fetched     int            `json:"fetched"`
	Added       int            `json:"added"`
	Windows     []WindowReport `json:"windows"`
}

// SalesOrderSyncService busca periodicamente os pedidos do ERP e os incorpora ao snapshot local
type SalesOrderSyncService struct {
	scheduler           *gocron.Scheduler
	config              SalesOrderSyncConfig
	integrator          erp.ERPIntegrator
	store               SalesOrderMerger
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *SyncReport
	now                 func() time.Time
}

// NewSalesOrderSyncService cria uma nova instância do serviço de sincronização de pedidos
func NewSalesOrderSyncService(
	integrator erp.ERPIntegrator,
	store SalesOrderMerger,
	appConfig *config.Config,
) *SalesOrderSyncService {
	syncConfig := SalesOrderSyncConfig{
		SyncEnabled:  appConfig.SalesOrderSync.Enabled,
		Interval:     appConfig.SalesOrderSync.Interval(),
		CronSchedule: appConfig.SalesOrderSync.CronSchedule,
		StartYear:    appConfig.SalesOrderSync.StartYear,
		WindowDelay:  appConfig.SalesOrderSync.WindowDelay(),
	}

	logrus.WithFields(logrus.Fields{
		"interval":      syncConfig.Interval.String(),
		"cron_schedule": syncConfig.CronSchedule,
		"start_year":    syncConfig.StartYear,
		"window_delay":  syncConfig.WindowDelay.String(),
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de pedidos de venda carregada")

	return &SalesOrderSyncService{
		scheduler:  gocron.NewScheduler(time.UTC),
		config:     syncConfig,
		integrator: integrator,
		store:      store,
		baseCtx:    context.Background(),
		now:        time.Now,
	}
}

// Start agenda a sincronização. Com intervalo, a primeira execução é imediata;
// com expressão cron, uma execução imediata é disparada além do agendamento.
// Um disparo que encontra outra execução em andamento é descartado em RunOnce,
// por isso o job não usa SingletonMode do gocron, que enfileira os disparos.
func (s *SalesOrderSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de pedidos de venda desabilitada por configuração")
		return nil
	}

	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	job := func() {
		s.runScheduled(ctx)
	}

	var err error
	if s.config.CronSchedule != "" {
		logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de pedidos de venda")
		_, err = s.scheduler.Cron(s.config.CronSchedule).Do(job)
		if err == nil {
			go job()
		}
	} else {
		logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando agendador de sincronização de pedidos de venda")
		_, err = s.scheduler.Every(s.config.Interval).Do(job)
	}
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de pedidos de venda: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de pedidos de venda")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SalesOrderSyncService) runScheduled(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			logrus.Info("Sincronização de pedidos já em andamento, ignorando ciclo")
			return
		}
		logrus.WithError(err).Warn("Sincronização de pedidos interrompida")
	}
}

// RunOnce executa um ciclo completo de sincronização. Se outro ciclo estiver em
// andamento, retorna ErrSyncInProgress sem esperar.
func (s *SalesOrderSyncService) RunOnce(ctx context.Context) (*SyncReport, error) {
	if !s.tryAcquire() {
		return nil, ErrSyncInProgress
	}
	defer s.release()

	return s.sync(ctx, newRunID())
}

// TriggerManualSync inicia uma sincronização em background e retorna o run_id
func (s *SalesOrderSyncService) TriggerManualSync() (string, error) {
	if !s.tryAcquire() {
		logrus.Info("Sincronização de pedidos já em andamento, ignorando solicitação manual")
		return "", ErrSyncInProgress
	}

	s.syncMutex.Lock()
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	runID := newRunID()
	logrus.WithField("run_id", runID).Info("Iniciando sincronização manual de pedidos de venda")

	go func() {
		defer s.release()
		if _, err := s.sync(ctx, runID); err != nil {
			logrus.WithError(err).WithField("run_id", runID).Warn("Sincronização manual de pedidos interrompida")
		}
	}()

	return runID, nil
}

func (s *SalesOrderSyncService) tryAcquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	return true
}

func (s *SalesOrderSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

func newRunID() string {
	id, err := utils.GenerateRunID("sync")
	if err != nil {
		return fmt.Sprintf("sync-%d", time.Now().UnixNano())
	}
	return id
}

// sync processa as janelas anuais em ordem crescente, uma de cada vez.
// Falha em uma janela não impede as seguintes.
func (s *SalesOrderSyncService) sync(ctx context.Context, runID string) (*SyncReport, error) {
	startedAt := s.now()
	logger := logrus.WithField("run_id", runID)

	s.syncMutex.Lock()
	s.lastSyncStartedAt = startedAt
	s.syncMutex.Unlock()

	report := &SyncReport{
		RunID:     runID,
		StartedAt: startedAt,
		Windows:   make([]WindowReport, 0),
	}

	windows := s.windowsToProcess(startedAt)
	logger.WithField("windows", len(windows)).Info("Iniciando sincronização de pedidos de venda")

	for i, window := range windows {
		if i > 0 && s.config.WindowDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.config.WindowDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			s.finish(report)
			return report, fmt.Errorf("sincronização cancelada na janela %s: %w", window, err)
		}

		windowReport := s.processWindow(ctx, logger, window)
		report.Windows = append(report.Windows, windowReport)
		report.Fetched += windowReport.Fetched
		report.Added += windowReport.Added
	}

	s.finish(report)

	logger.WithFields(logrus.Fields{
		"duration": report.CompletedAt.Sub(startedAt).String(),
		"fetched":  report.Fetched,
		"added":    report.Added,
	}).Info("Sincronização de pedidos de venda concluída")

	return report, nil
}

func (s *SalesOrderSyncService) finish(report *SyncReport) {
	report.CompletedAt = s.now()

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = report.CompletedAt
	s.lastReport = report
	s.syncMutex.Unlock()
}

func (s *SalesOrderSyncService) processWindow(ctx context.Context, logger *logrus.Entry, window domain.QueryWindow) WindowReport {
	windowReport := WindowReport{Window: window.String()}
	logger = logger.WithField("window", window.String())

	raws := s.integrator.FetchWindow(ctx, window)
	windowReport.Fetched = len(raws)
	if len(raws) == 0 {
		logger.Debug("Nenhum pedido obtido do ERP para a janela")
		return windowReport
	}

	added, err := s.store.MergeInsert(ctx, erp.NormalizeAll(raws))
	windowReport.Added = added
	if err != nil {
		windowReport.Error = err.Error()
		logger.WithError(err).Warn("Erro ao incorporar pedidos da janela ao snapshot")
		return windowReport
	}

	logger.WithFields(logrus.Fields{
		"fetched": windowReport.Fetched,
		"added":   added,
	}).Info("Janela de pedidos sincronizada")

	return windowReport
}

// windowsToProcess cria as janelas anuais do ano inicial até o ano corrente
func (s *SalesOrderSyncService) windowsToProcess(now time.Time) []domain.QueryWindow {
	windows := make([]domain.QueryWindow, 0)
	for year := s.config.StartYear; year <= now.Year(); year++ {
		windows = append(windows, domain.AnnualWindow(year))
	}
	return windows
}

// GetStatus retorna o status atual do agendador
func (s *SalesOrderSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_interval":          s.config.Interval.String(),
		"sync_cron":              s.config.CronSchedule,
		"sync_start_year":        s.config.StartYear,
		"sync_window_delay":      s.config.WindowDelay.String(),
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report":            s.lastReport,
	}
}
