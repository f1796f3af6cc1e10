package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/pkg/config"
)

func TestLoad_SinSecret_RetornaError(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err, "JWT_SECRET vacío debe impedir el arranque")
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 12, cfg.POS.WarrantyMonths)
	assert.True(t, cfg.POS.DefaultExchangeRate.Equal(decimal.NewFromInt(4100)))
	assert.Equal(t, "@daily", cfg.Jobs.WarrantyExpiryCron)
	assert.True(t, cfg.Migrate.OnStart)
	assert.False(t, cfg.Migrate.RequireAuth)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POS_DEFAULT_EXCHANGE_RATE", "4050.5")
	t.Setenv("MIGRATE_REQUIRE_AUTH", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "4050.5", cfg.POS.DefaultExchangeRate.String())
	assert.True(t, cfg.Migrate.RequireAuth)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "myshop", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/myshop?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
