package swing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuningFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTuningAppliesOverrides(t *testing.T) {
	path := writeTuningFile(t, "tuning.json",
		`{"peak_prominence": 250.0, "min_swing_gap": 400, "conf_threshold": 0.5}`)

	tn, err := LoadTuning(path)
	require.NoError(t, err)

	cfg := tn.Apply(DefaultConfig())
	assert.Equal(t, 250.0, cfg.PeakProminence)
	assert.Equal(t, 400, cfg.MinSwingGap)
	assert.Equal(t, 0.5, cfg.ConfThreshold)

	// Untouched fields keep their defaults.
	assert.Equal(t, 9, cfg.SavgolWindow)
	assert.Equal(t, 61, cfg.CoarseWindow)
	require.NoError(t, cfg.Validate())
}

func TestLoadTuningRejectsWrongExtension(t *testing.T) {
	path := writeTuningFile(t, "tuning.yaml", `{}`)

	_, err := LoadTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".json")
}

func TestLoadTuningRejectsOversizeFile(t *testing.T) {
	path := writeTuningFile(t, "big.json", strings.Repeat(" ", 1<<20+1))

	_, err := LoadTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadTuningRejectsMalformedJSON(t *testing.T) {
	path := writeTuningFile(t, "broken.json", `{"peak_prominence": `)

	_, err := LoadTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestApplyNilTuning(t *testing.T) {
	var tn *Tuning
	assert.Equal(t, DefaultConfig(), tn.Apply(DefaultConfig()))
}
