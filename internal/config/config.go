package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SnapshotDriverFile     = "file"
	SnapshotDriverPostgres = "postgres"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	ERP            ERP            `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	SalesOrderSync SalesOrderSync `mapstructure:",squash"`
	Snapshot       Snapshot       `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// ERP contém os parâmetros da API de pedidos de venda e o escopo fixo das consultas
type ERP struct {
	URL                string `mapstructure:"erp_url"`
	AccessToken        string `mapstructure:"erp_access_token"`
	LocationID         string `mapstructure:"erp_location_id"`
	EmployeeID         string `mapstructure:"erp_employee_id"`
	PreparedBy         string `mapstructure:"erp_prepared_by"`
	ViewAll            bool   `mapstructure:"erp_view_all"`
	PageSize           int    `mapstructure:"erp_page_size"`
	MaxPages           int    `mapstructure:"erp_max_pages"`
	PageTimeoutSeconds int    `mapstructure:"erp_page_timeout_seconds"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type SalesOrderSync struct {
	Enabled            bool   `mapstructure:"erp_sync_enabled"`
	IntervalSeconds    int    `mapstructure:"erp_sync_interval_seconds"`
	CronSchedule       string `mapstructure:"erp_sync_cron"`
	StartYear          int    `mapstructure:"erp_sync_start_year"`
	WindowDelaySeconds int    `mapstructure:"erp_sync_window_delay_seconds"`
}

type Snapshot struct {
	Driver   string `mapstructure:"snapshot_driver"`
	FilePath string `mapstructure:"snapshot_file"`
}

// PageTimeout retorna o timeout aplicado a cada página buscada no ERP
func (e ERP) PageTimeout() time.Duration {
	return time.Duration(e.PageTimeoutSeconds) * time.Second
}

func (s SalesOrderSync) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

func (s SalesOrderSync) WindowDelay() time.Duration {
	return time.Duration(s.WindowDelaySeconds) * time.Second
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_orders?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("ERP_URL", "https://erp.example.com/api/v1")
	viper.SetDefault("ERP_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("ERP_LOCATION_ID", "")
	viper.SetDefault("ERP_EMPLOYEE_ID", "")
	viper.SetDefault("ERP_PREPARED_BY", "")
	viper.SetDefault("ERP_VIEW_ALL", true)
	viper.SetDefault("ERP_PAGE_SIZE", 500)           // Registros por página
	viper.SetDefault("ERP_MAX_PAGES", 1000)          // Limite de páginas por janela
	viper.SetDefault("ERP_PAGE_TIMEOUT_SECONDS", 30) // Timeout de cada página

	// Defaults para sincronização de pedidos de venda
	viper.SetDefault("ERP_SYNC_ENABLED", true)
	viper.SetDefault("ERP_SYNC_INTERVAL_SECONDS", 60) // A cada 60 segundos
	viper.SetDefault("ERP_SYNC_CRON", "")             // Vazio = usa o intervalo
	viper.SetDefault("ERP_SYNC_START_YEAR", 2023)     // Primeiro ano sincronizado
	viper.SetDefault("ERP_SYNC_WINDOW_DELAY_SECONDS", 0)

	viper.SetDefault("SNAPSHOT_DRIVER", SnapshotDriverFile)
	viper.SetDefault("SNAPSHOT_FILE", "data/sales_orders.json")

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

// NewConfig carrega a configuração a partir do .env (opcional) e das variáveis de ambiente.
// envFile pode ser vazio; nesse caso as localizações padrão são testadas.
func NewConfig(envFile string) (*Config, error) {
	loadEnvFile(envFile) // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	if envFile != "" {
		viper.SetConfigFile(envFile)
	} else {
		viper.SetConfigFile(".env")
	}
	viper.AutomaticEnv()

	// Ler o arquivo .env com o Viper é opcional, já que usamos godotenv
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.ERP.URL = strings.TrimRight(config.ERP.URL, "/")
	config.Snapshot.Driver = strings.ToLower(strings.TrimSpace(config.Snapshot.Driver))

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejeita combinações de configuração que impedem a aplicação de funcionar
func (c *Config) Validate() error {
	var errs []error

	if c.ERP.URL == "" {
		errs = append(errs, errors.New("ERP_URL é obrigatório"))
	}
	if c.ERP.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("ERP_PAGE_SIZE deve ser positivo: %d", c.ERP.PageSize))
	}
	if c.ERP.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("ERP_MAX_PAGES deve ser positivo: %d", c.ERP.MaxPages))
	}
	if c.ERP.PageTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("ERP_PAGE_TIMEOUT_SECONDS deve ser positivo: %d", c.ERP.PageTimeoutSeconds))
	}
	if c.SalesOrderSync.CronSchedule == "" && c.SalesOrderSync.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("ERP_SYNC_INTERVAL_SECONDS deve ser positivo: %d", c.SalesOrderSync.IntervalSeconds))
	}
	if c.SalesOrderSync.StartYear < 1900 || c.SalesOrderSync.StartYear > 9999 {
		errs = append(errs, fmt.Errorf("ERP_SYNC_START_YEAR inválido: %d", c.SalesOrderSync.StartYear))
	}

	switch c.Snapshot.Driver {
	case SnapshotDriverFile:
		if c.Snapshot.FilePath == "" {
			errs = append(errs, errors.New("SNAPSHOT_FILE é obrigatório quando SNAPSHOT_DRIVER=file"))
		}
	case SnapshotDriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("SNAPSHOT_DRIVER inválido: %q (valores aceitos: file, postgres)", c.Snapshot.Driver))
	}

	return errors.Join(errs...)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile(envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logrus.Warn("Não foi possível carregar o arquivo .env informado: ", err)
		}
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de: ", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
