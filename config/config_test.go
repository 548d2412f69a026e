package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrothberg/testing-farm-package-analyzer/config"
)

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// given
		raw := ""

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "glpat-abc123xyz"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "glpat-abc123xyz", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_TOKEN_RESOLVE", "my-secret-token")
		raw := "${TEST_TOKEN_RESOLVE}"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "my-secret-token", result)
	})

	t.Run("should return empty for unset env var", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "${DEFINITELY_NOT_SET_VAR_12345}"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should read token from file when path exists", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "token.key")
		err := os.WriteFile(tokenFile, []byte("  file-based-token  \n"), 0o600)
		require.NoError(t, err)

		// when
		result := config.ResolveToken(tokenFile)

		// then
		assert.Equal(t, "file-based-token", result)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("should target the public CentOS Stream RPMs group", func(t *testing.T) {
		t.Parallel()

		// when
		cfg := config.Default()

		// then
		assert.Equal(t, "gitlab", cfg.Provider)
		assert.Equal(t, "redhat/centos-stream/rpms", cfg.Group)
		assert.Equal(t, "https://gitlab.com", cfg.BaseURL)
		assert.Equal(t, "testing_farm_analysis.json", cfg.Output)
		assert.Equal(t, 100, cfg.RequestDelayMS)
		assert.Empty(t, cfg.Token)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should fill unset fields with defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "analyzer.yaml")
		content := "group: my-org/my-subgroup\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "my-org/my-subgroup", cfg.Group)
		assert.Equal(t, "gitlab", cfg.Provider)
		assert.Equal(t, 100, cfg.RequestDelayMS)
	})

	t.Run("should parse a full config file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "analyzer.yaml")
		content := `provider: gitlab
group: redhat/centos-stream/rpms
base_url: https://gitlab.example.com
output: out/report.json
request_delay_ms: 250
required_tools:
  - rpm
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://gitlab.example.com", cfg.BaseURL)
		assert.Equal(t, "out/report.json", cfg.Output)
		assert.Equal(t, 250, cfg.RequestDelayMS)
		assert.Equal(t, []string{"rpm"}, cfg.RequiredTools)
	})

	t.Run("should fail on a malformed file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "analyzer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("group: [unclosed"), 0o600))

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("should accept the defaults", func(t *testing.T) {
		t.Parallel()

		// when
		err := config.Validate(config.Default())

		// then
		assert.NoError(t, err)
	})

	t.Run("should fail when the group is empty", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Group = ""

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "group is required")
	})

	t.Run("should fail when the output path is empty", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Output = ""

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output path is required")
	})

	t.Run("should fail on a negative request delay", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.RequestDelayMS = -1

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be negative")
	})
}

func TestRequestDelay(t *testing.T) {
	t.Parallel()

	t.Run("should convert milliseconds to a duration", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()

		// when
		delay := cfg.RequestDelay()

		// then
		assert.Equal(t, "100ms", delay.String())
	})
}
