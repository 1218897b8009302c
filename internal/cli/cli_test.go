package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/trainflags/internal/core"
	"github.com/specialistvlad/trainflags/internal/precision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func defaultSettings() *core.Settings {
	return &core.Settings{
		DataDir:            "/tmp",
		ModelDir:           "/tmp",
		TrainEpochs:        1,
		EpochsBetweenEvals: 1,
		BatchSize:          32,
		Hooks:              []string{"LoggingTensorHook"},
		NumParallelCalls:   5,
		Dtype:              precision.FP32,
		LossScale:          1,
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name:           "Defaults",
			args:           nil,
			expectedConfig: &Config{Settings: defaultSettings(), LogFormat: "json", LogLevel: "info"},
		},
		{
			name: "Happy path with long and short flags",
			args: []string{
				"--data_dir=/data", "-md", "/models", "-te", "90", "-bs", "256",
				"--multi_gpu", "-hk", "p,eps", "-dt", "fp16", "-df", "channels_first",
				"-st", "0.76", "--log-level=DEBUG", "--log-format=text",
			},
			expectedConfig: &Config{
				Settings: func() *core.Settings {
					s := defaultSettings()
					s.DataDir = "/data"
					s.ModelDir = "/models"
					s.TrainEpochs = 90
					s.BatchSize = 256
					s.MultiGPU = true
					s.Hooks = []string{"ProfilerHook", "ExamplesPerSecondHook"}
					s.Dtype = precision.FP16
					s.LossScale = 128
					s.DataFormat = ptr("channels_first")
					s.StopThreshold = ptr(0.76)
					return s
				}(),
				LogFormat: "text",
				LogLevel:  "debug",
			},
		},
		{
			name:       "Help flag triggers clean exit with key flags",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Usage of "+Program)
				assert.Contains(t, output, "--data_dir, -dd:")
				assert.Contains(t, output, "--dtype, -dt:")
				assert.Contains(t, output, "--log-level:")
				assert.NotContains(t, output, "--stop_threshold")
			},
		},
		{
			name:       "Helpfull lists every flag",
			args:       []string{"--helpfull"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "--stop_threshold, -st:")
				assert.Contains(t, output, "--inter_op_parallelism_threads, -inter:")
			},
		},
		{
			name:      "Unknown dtype",
			args:      []string{"--dtype=fp64"},
			expectErr: "--dtype: 'fp64' is not allowed",
		},
		{
			name:      "Non-positive loss scale",
			args:      []string{"--loss_scale=0"},
			expectErr: "--loss_scale: must be a positive number",
		},
		{
			name:      "Unknown data format",
			args:      []string{"--data_format=NHWC"},
			expectErr: "--data_format",
		},
		{
			name:      "Unknown flag",
			args:      []string{"--this-is-not-a-valid-flag"},
			expectErr: "flag provided but not defined: -this-is-not-a-valid-flag",
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo"},
			expectErr: "invalid log-level",
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml"},
			expectErr: "invalid log-format",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr != "" {
				require.Error(t, err)
				exitErr, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParse_FlagFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "train.hcl")
	require.NoError(t, os.WriteFile(path, []byte("dtype = \"fp16\"\nloss_scale = 64\nhooks = [\"lm\"]\n"), 0600))

	// --- Act ---
	cfg, shouldExit, err := Parse([]string{"--flagfile", path}, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, precision.FP16, cfg.Settings.Dtype)
	assert.Equal(t, 64.0, cfg.Settings.LossScale)
	assert.Equal(t, []string{"LoggingMetricHook"}, cfg.Settings.Hooks)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	logger := NewLogger("warn", "json", out)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)

	out.Reset()
	NewLogger("debug", "text", out).Debug("visible")
	assert.Contains(t, out.String(), "msg=visible")
}
