package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int    `json:"port"`
	BaseUrl string `json:"base_url"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	err := os.WriteFile(path, []byte(`{port: 8080, base_url: "https://store.example"}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{Port: 8080, BaseUrl: "https://store.example"}, config)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "config.json5"),
		[]byte(`{port: 8080, base_url: "https://store.example"}`),
		0644,
	)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{port: 3000}`),
		0644,
	)
	if err != nil {
		t.Fatal(err)
	}

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Port: 3000, BaseUrl: "https://store.example"}, config)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}
