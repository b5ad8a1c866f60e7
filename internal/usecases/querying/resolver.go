package querying

import (
	"context"

	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

// Resolver traduz a pergunta em texto livre para um QueryDescriptor.
// A implementação (normalmente um LLM) fica fora deste serviço.
type Resolver interface {
	Resolve(ctx context.Context, question string) (*domain.QueryDescriptor, error)
}

// ResolverFunc permite usar uma função simples como Resolver
type ResolverFunc func(ctx context.Context, question string) (*domain.QueryDescriptor, error)

func (f ResolverFunc) Resolve(ctx context.Context, question string) (*domain.QueryDescriptor, error) {
	return f(ctx, question)
}
