package querying

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/sales-order-assistant/internal/domain"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/snapshot"
	"github.com/vfg2006/sales-order-assistant/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Querier interface {
	Ask(ctx context.Context, question string, descriptor *domain.QueryDescriptor) (*Answer, error)
}

// SnapshotReader é a parte do snapshot store usada pelas consultas
type SnapshotReader interface {
	Snapshot() *snapshot.Snapshot
}

// Answer é a resposta estruturada de uma pergunta. Handled=false indica uma
// pergunta geral, que não é respondida com dados do ERP.
type Answer struct {
	Question          string                  `json:"question,omitempty"`
	Handled           bool                    `json:"handled"`
	Descriptor        *domain.QueryDescriptor `json:"query,omitempty"`
	Result            *domain.QueryResult     `json:"result,omitempty"`
	SnapshotSize      int                     `json:"snapshot_size"`
	SnapshotUpdatedAt time.Time               `json:"snapshot_updated_at"`
}

type Service struct {
	engine    QueryEngine
	snapshots SnapshotReader
	resolver  Resolver
}

// NewService cria o serviço de consultas. resolver pode ser nil; nesse caso
// toda requisição precisa trazer o descritor pronto.
func NewService(snapshots SnapshotReader, resolver Resolver) *Service {
	return &Service{
		engine:    NewEngine(),
		snapshots: snapshots,
		resolver:  resolver,
	}
}

func (s *Service) Ask(ctx context.Context, question string, descriptor *domain.QueryDescriptor) (*Answer, error) {
	logger := log.ForContext(ctx)

	if descriptor == nil {
		if s.resolver == nil {
			return nil, ErrResolverRequired
		}

		resolved, err := s.resolver.Resolve(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolveFailed, err)
		}
		if resolved == nil {
			return nil, fmt.Errorf("%w: resolvedor não devolveu descritor", ErrResolveFailed)
		}
		descriptor = resolved
		logger.WithField("intent", descriptor.Intent).Debug("Pergunta interpretada pelo resolvedor")
	}

	// Uma única visão é usada do início ao fim da consulta
	snap := s.snapshots.Snapshot()

	answer := &Answer{
		Question:          question,
		Descriptor:        descriptor,
		SnapshotSize:      snap.Len(),
		SnapshotUpdatedAt: snap.UpdatedAt(),
	}

	result, err := s.engine.Answer(*descriptor, snap.Records())
	if errors.Is(err, ErrGeneralIntent) {
		return answer, nil
	}
	if err != nil {
		return nil, err
	}

	answer.Handled = true
	answer.Result = result
	return answer, nil
}
