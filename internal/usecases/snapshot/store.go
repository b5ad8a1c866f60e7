// Package snapshot mantém a coleção local e deduplicada de pedidos de venda
package snapshot

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-order-assistant/infrastructure/repository"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

// Snapshot é uma visão imutável da coleção em um instante.
// Um Snapshot publicado nunca é alterado; merges publicam um novo.
type Snapshot struct {
	records   []domain.SalesOrderRecord
	ids       map[string]struct{}
	updatedAt time.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		records: []domain.SalesOrderRecord{},
		ids:     map[string]struct{}{},
	}
}

func (s *Snapshot) Len() int {
	return len(s.records)
}

// Records devolve uma cópia dos registros na ordem de merge
func (s *Snapshot) Records() []domain.SalesOrderRecord {
	records := make([]domain.SalesOrderRecord, len(s.records))
	copy(records, s.records)
	return records
}

func (s *Snapshot) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Snapshot) UpdatedAt() time.Time {
	return s.updatedAt
}

// Status resume o estado do store para o endpoint de status
type Status struct {
	Records          int       `json:"records"`
	UpdatedAt        time.Time `json:"updated_at"`
	LastMergeAt      time.Time `json:"last_merge_at"`
	LastMergeAdded   int       `json:"last_merge_added"`
	LastPersistAt    time.Time `json:"last_persist_at"`
	LastPersistError string    `json:"last_persist_error,omitempty"`
}

// Store é o dono do snapshot. Leitores usam Snapshot() sem bloqueio;
// apenas MergeInsert altera o estado, serializado por mergeMutex.
// statusMutex protege só os dados de Status e nunca é mantido durante Save.
type Store struct {
	repo    repository.SalesOrderRepository
	current atomic.Pointer[Snapshot]

	mergeMutex     sync.Mutex
	persistPending bool

	statusMutex    sync.Mutex
	lastMergeAt    time.Time
	lastMergeAdded int
	lastPersistAt  time.Time
	lastPersistErr error

	now func() time.Time
}

func NewStore(repo repository.SalesOrderRepository) *Store {
	s := &Store{
		repo: repo,
		now:  time.Now,
	}
	s.current.Store(emptySnapshot())
	return s
}

// Load lê o armazenamento durável e publica o resultado. Um arquivo ausente,
// ilegível ou corrompido resulta em um store vazio: os próximos ciclos de
// sincronização repovoam os dados.
func (s *Store) Load(ctx context.Context) int {
	s.mergeMutex.Lock()
	defer s.mergeMutex.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível carregar o snapshot de pedidos, iniciando vazio")
		s.current.Store(emptySnapshot())
		return 0
	}

	next := emptySnapshot()
	next.records = make([]domain.SalesOrderRecord, 0, len(records))
	duplicated := 0
	for _, record := range records {
		if _, exists := next.ids[record.ID]; exists {
			duplicated++
			continue
		}
		next.ids[record.ID] = struct{}{}
		next.records = append(next.records, record)
	}
	next.updatedAt = s.now()

	s.current.Store(next)

	logrus.WithFields(logrus.Fields{
		"records":    next.Len(),
		"duplicated": duplicated,
	}).Info("Snapshot de pedidos carregado")

	return next.Len()
}

// Snapshot devolve a visão publicada mais recente
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Len devolve o tamanho do snapshot publicado, sem bloqueio
func (s *Store) Len() int {
	return s.current.Load().Len()
}

// MergeInsert adiciona apenas os candidatos cujo ID ainda não existe e devolve
// quantos foram adicionados. Registros existentes nunca são sobrescritos.
// O novo snapshot é publicado antes da gravação; se a gravação falhar, o erro
// envolve ErrPersistFailed e o número de adicionados continua válido.
func (s *Store) MergeInsert(ctx context.Context, candidates []domain.SalesOrderRecord) (int, error) {
	s.mergeMutex.Lock()
	defer s.mergeMutex.Unlock()

	current := s.current.Load()

	added := make([]domain.SalesOrderRecord, 0)
	batchIDs := make(map[string]struct{})
	for _, candidate := range candidates {
		if current.Contains(candidate.ID) {
			continue
		}
		if _, seen := batchIDs[candidate.ID]; seen {
			continue
		}
		batchIDs[candidate.ID] = struct{}{}
		added = append(added, candidate)
	}

	s.statusMutex.Lock()
	s.lastMergeAt = s.now()
	s.lastMergeAdded = len(added)
	s.statusMutex.Unlock()

	if len(added) == 0 {
		if s.persistPending {
			return 0, s.persist(ctx, current, nil)
		}
		return 0, nil
	}

	records := make([]domain.SalesOrderRecord, 0, len(current.records)+len(added))
	records = append(records, current.records...)
	records = append(records, added...)

	ids := maps.Clone(current.ids)
	maps.Copy(ids, batchIDs)

	next := &Snapshot{
		records:   records,
		ids:       ids,
		updatedAt: s.now(),
	}
	s.current.Store(next)

	return len(added), s.persist(ctx, next, added)
}

// persist deve ser chamado com mergeMutex travado
func (s *Store) persist(ctx context.Context, snap *Snapshot, added []domain.SalesOrderRecord) error {
	// Após uma falha o backend pode não ter recebido merges anteriores,
	// então o delta passa a ser a coleção inteira
	if s.persistPending {
		added = snap.records
	}

	if err := s.repo.Save(ctx, snap.records, added); err != nil {
		s.persistPending = true
		s.statusMutex.Lock()
		s.lastPersistErr = err
		s.statusMutex.Unlock()
		logrus.WithError(err).WithField("records", snap.Len()).Warn("Erro ao persistir snapshot de pedidos, mantendo dados em memória")
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	s.persistPending = false
	s.statusMutex.Lock()
	s.lastPersistErr = nil
	s.lastPersistAt = s.now()
	s.statusMutex.Unlock()
	return nil
}

// Status não espera merges nem gravações em andamento
func (s *Store) Status() Status {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	snap := s.current.Load()
	status := Status{
		Records:        snap.Len(),
		UpdatedAt:      snap.updatedAt,
		LastMergeAt:    s.lastMergeAt,
		LastMergeAdded: s.lastMergeAdded,
		LastPersistAt:  s.lastPersistAt,
	}
	if s.lastPersistErr != nil {
		status.LastPersistError = s.lastPersistErr.Error()
	}
	return status
}
