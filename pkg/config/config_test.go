package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/planta-despachos/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "data/planta.json", cfg.Store.FilePath)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.App.SeedDemo)
}

func TestFromViper_Postgres(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "POSTGRES")
	v.Set("DB_HOST", "db")
	v.Set("DB_PORT", "6543")
	v.Set("DB_PASSWORD", "p@ss:word")
	v.Set("SEED_DEMO_DATA", "true")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.App.SeedDemo)
	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@db:6543/planta?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_DatabaseURLTienePrioridad(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "postgres")
	v.Set("DATABASE_URL", "postgres://u:p@h:5432/x")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_FileSinRuta(t *testing.T) {
	v := viper.New()
	v.Set("STORE_FILE_PATH", "  ")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}
