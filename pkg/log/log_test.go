package log

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	known := uuid.New().String()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "reaproveita UUID recebido", incoming: known, reuse: true},
		{name: "gera novo quando vazio", incoming: ""},
		{name: "gera novo quando inválido", incoming: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, id := WithCorrelationID(context.Background(), tt.incoming)

			assert.Equal(t, id, GetCorrelationID(ctx))
			_, err := uuid.Parse(id)
			require.NoError(t, err)
			if tt.reuse {
				assert.Equal(t, tt.incoming, id)
			} else {
				assert.NotEqual(t, tt.incoming, id)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	assert.NoError(t, Setup("info"))
	assert.Error(t, Setup("verboso"))
	SetupTestLogger()
}
