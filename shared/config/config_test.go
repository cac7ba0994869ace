package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publicYaml = `
listen_addr: ":8080"
gallery:
  enabled: true
  min_image_size: 100
  allowed_groups: [0, 10]
  excluded_categories: [5]
log_level: "debug"
`

const privateYaml = `
pg:
  host: "localhost"
  port: 5432
  user: "threadlens"
  dbname: "threadlens"
jwt_secret: "file-secret"
`

func writeConfigFolder(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0644))
	if private != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0644))
	}
	return dir
}

func TestMustLoad(t *testing.T) {
	t.Run("loads and validates both files", func(t *testing.T) {
		dir := writeConfigFolder(t, publicYaml, privateYaml)

		cfg := MustLoad(dir)
		assert.Equal(t, ":8080", cfg.Public.ListenAddr)
		assert.True(t, cfg.Public.Gallery.Enabled)
		assert.Equal(t, 100, cfg.Public.Gallery.MinImageSize)
		assert.Equal(t, []int64{0, 10}, cfg.Public.Gallery.AllowedGroups)
		assert.Equal(t, "file-secret", cfg.Private.JwtSecret)
	})

	t.Run("environment overrides secrets", func(t *testing.T) {
		dir := writeConfigFolder(t, publicYaml, privateYaml)
		t.Setenv("THREADLENS_JWT_SECRET", "env-secret")
		t.Setenv("PG_PASSWORD", "env-password")

		cfg := MustLoad(dir)
		assert.Equal(t, "env-secret", cfg.Private.JwtSecret)
		assert.Equal(t, "env-password", cfg.Private.Pg.Password)
	})

	t.Run("missing file panics", func(t *testing.T) {
		dir := writeConfigFolder(t, publicYaml, "")
		assert.Panics(t, func() { MustLoad(dir) })
	})

	t.Run("missing required field panics", func(t *testing.T) {
		dir := writeConfigFolder(t, "log_level: info\n", privateYaml)
		assert.Panics(t, func() { MustLoad(dir) })
	})
}

func TestMustLoadPublic(t *testing.T) {
	t.Run("private file is not required", func(t *testing.T) {
		dir := writeConfigFolder(t, publicYaml, "")
		cfg := MustLoadPublic(dir)
		assert.Equal(t, ":8080", cfg.Public.ListenAddr)
	})

	t.Run("validation still applies", func(t *testing.T) {
		dir := writeConfigFolder(t, "log_level: info\n", "")
		assert.Panics(t, func() { MustLoadPublic(dir) })
	})
}
