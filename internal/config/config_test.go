package config_test

import (
	"testing"

	"github.com/Flaque/filet"
	"github.com/Houeta/staff-api/internal/config"
	"github.com/stretchr/testify/assert"
)

const testConfigYaml = `env: local
postgres:
  host: testHost
  port: "12345"
  user: admin
  password: adminpass
  db_name: testName
server:
  host: 127.0.0.1
  port: "9090"
`

func TestMustLoad_FromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", testConfigYaml)
	t.Setenv("CONFIG_PATH", file.Name())

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Postgres.Host)
	assert.Equal(t, "12345", cfg.Postgres.Port)
	assert.Equal(t, "admin", cfg.Postgres.User)
	assert.Equal(t, "adminpass", cfg.Postgres.Password)
	assert.Equal(t, "testName", cfg.Postgres.Dbname)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestMustLoad_EmptyPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	assert.PanicsWithValue(t, "config path is empty", func() {
		config.MustLoad()
	})
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	assert.Panics(t, func() {
		config.MustLoad()
	})
}
