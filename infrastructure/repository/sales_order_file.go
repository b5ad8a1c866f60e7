package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	snapshotFileVersion = 1
	snapshotDirPerms    = 0o755
	snapshotFilePerms   = 0o644
)

// ErrUnsupportedSnapshotVersion indica um arquivo gravado por uma versão incompatível
var ErrUnsupportedSnapshotVersion = errors.New("versão do arquivo de snapshot não suportada")

type snapshotFile struct {
	Version int                       `json:"version"`
	SavedAt time.Time                 `json:"saved_at"`
	Records []domain.SalesOrderRecord `json:"records"`
}

type fileSalesOrderRepository struct {
	path string
}

// NewFileSalesOrderRepository grava o snapshot completo em um único arquivo JSON,
// substituído atomicamente a cada Save
func NewFileSalesOrderRepository(path string) SalesOrderRepository {
	return &fileSalesOrderRepository{
		path: path,
	}
}

func (r *fileSalesOrderRepository) Load(_ context.Context) ([]domain.SalesOrderRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.SalesOrderRecord{}, nil
		}
		return nil, errors.Wrapf(err, "erro ao ler o arquivo de snapshot %s", r.path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.SalesOrderRecord{}, nil
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar o arquivo de snapshot %s", r.path)
	}

	if file.Version != snapshotFileVersion {
		return nil, errors.Wrapf(ErrUnsupportedSnapshotVersion, "versão %d", file.Version)
	}

	if file.Records == nil {
		file.Records = []domain.SalesOrderRecord{}
	}

	return file.Records, nil
}

func (r *fileSalesOrderRepository) Save(_ context.Context, all []domain.SalesOrderRecord, _ []domain.SalesOrderRecord) error {
	file := snapshotFile{
		Version: snapshotFileVersion,
		SavedAt: time.Now().UTC(),
		Records: all,
	}

	data, err := json.Marshal(file)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar o snapshot")
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, snapshotDirPerms); err != nil {
			return errors.Wrapf(err, "erro ao criar o diretório %s", dir)
		}
	}

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "erro ao gravar o arquivo de snapshot %s", r.path)
	}

	// atomic.WriteFile não define permissões para arquivos novos
	if err := os.Chmod(r.path, snapshotFilePerms); err != nil {
		return errors.Wrapf(err, "erro ao definir permissões de %s", r.path)
	}

	return nil
}
