package configstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockalloc/pkg/domain/entities"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg, err := entities.NewAllocationConfig(
		[]string{"125007 MSK-PC-Гагаринский", "125004 EKT-PC-Гринвич"},
		[]string{"125004 EKT-PC-Гринвич"},
		[]entities.StorePair{{A: 125004, B: 125007}},
	)
	require.NoError(t, err)
	cfg.BalanceThreshold = 3

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"store_priority": ["125007 MSK-PC-Гагаринский"]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultBalanceThreshold, cfg.BalanceThreshold)
	assert.Equal(t, entities.DefaultColumnBindings(), cfg.Columns)
	assert.Empty(t, cfg.ExcludedStores)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"store_priority": ["not a store"]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_InvalidConfigRejected(t *testing.T) {
	cfg := &entities.AllocationConfig{}
	err := Save(filepath.Join(t.TempDir(), "settings.json"), cfg)
	assert.Error(t, err)
}
