package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/trainflags/internal/catalog"
	"github.com/specialistvlad/trainflags/internal/precision"
	"github.com/specialistvlad/trainflags/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePerformance(t *testing.T, args ...string) *registry.Registry {
	t.Helper()
	r := registry.New("core_test", &bytes.Buffer{})
	DefinePerformance(r, catalog.AllPerformance())
	require.NoError(t, r.Parse(args))
	return r
}

func TestLossScale(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		args      []string
		wantDtype precision.Precision
		wantScale float64
	}{
		{name: "fp16 default", args: []string{"--dtype=fp16"}, wantDtype: precision.FP16, wantScale: 128},
		{name: "fp32 default", args: []string{"--dtype=fp32"}, wantDtype: precision.FP32, wantScale: 1},
		{name: "dtype default", args: nil, wantDtype: precision.FP32, wantScale: 1},
		{name: "explicit with fp16", args: []string{"-dt", "fp16", "-ls", "512"}, wantDtype: precision.FP16, wantScale: 512},
		{name: "explicit with fp32", args: []string{"--loss_scale=0.25"}, wantDtype: precision.FP32, wantScale: 0.25},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := parsePerformance(t, tc.args...)

			assert.Equal(t, tc.wantDtype, Dtype(r))
			assert.Equal(t, tc.wantScale, LossScale(r))
		})
	}
}

func TestLossScale_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"0", "-1", "-128"} {
		r := registry.New("core_test", &bytes.Buffer{})
		DefinePerformance(r, catalog.AllPerformance())
		assert.Error(t, r.Parse([]string{"--loss_scale=" + v}), "loss scale %s should be rejected", v)
	}
}

func TestKeyFlagPropagation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	r := registry.New("demo", out)
	base := catalog.AllBase()
	base.BatchSize = false

	// --- Act ---
	DefineBase(r, base)
	DefinePerformance(r, catalog.PerformanceToggles{Dtype: true, InterOp: true})
	DefineImage(r, catalog.AllImage())
	r.AdoptModuleKeyFlags(Module)

	// --- Assert ---
	keys := r.KeyFlags(r.Program())
	assert.Equal(t, r.KeyFlags(Module), keys)
	assert.Contains(t, keys, "data_dir")
	assert.Contains(t, keys, "dtype")
	assert.Contains(t, keys, "data_format")
	assert.NotContains(t, keys, "batch_size", "disabled flags are not key flags")
	assert.NotContains(t, keys, "stop_threshold")
	assert.NotContains(t, keys, "inter_op_parallelism_threads")

	require.Error(t, r.Parse([]string{"-h"}))
	help := out.String()
	assert.Contains(t, help, "--data_format, -df:")
	assert.NotContains(t, help, "--inter_op_parallelism_threads")
}

func TestDefineExampleAndExport(t *testing.T) {
	t.Parallel()

	r := registry.New("demo", &bytes.Buffer{})
	DefineExample(r, catalog.AllExample())
	DefineExport(r, catalog.AllExport())

	assert.Equal(t, []string{"foo", "bar", "export_dir"}, r.KeyFlags(Module))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "flags.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
dtype       = "fp16"
batch_size  = 64
data_format = "channels_last"
`), 0600))
	r := registry.New("demo", &bytes.Buffer{})
	DefineBase(r, catalog.AllBase())
	DefinePerformance(r, catalog.AllPerformance())
	DefineImage(r, catalog.AllImage())
	require.NoError(t, r.Parse([]string{"--flagfile", path, "-hk", "p,EPS", "-mts", "200"}))

	// --- Act ---
	s, err := Load(r)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "/tmp", s.DataDir)
	assert.Equal(t, 64, s.BatchSize)
	assert.Equal(t, []string{"ProfilerHook", "ExamplesPerSecondHook"}, s.Hooks)
	assert.Nil(t, s.StopThreshold)
	assert.Nil(t, s.ExportDir)
	require.NotNil(t, s.MaxTrainSteps)
	assert.Equal(t, 200, *s.MaxTrainSteps)
	assert.Equal(t, precision.FP16, s.Dtype)
	assert.Equal(t, 128.0, s.LossScale)
	require.NotNil(t, s.DataFormat)
	assert.Equal(t, catalog.ChannelsLast, *s.DataFormat)
	assert.Equal(t, 5, s.NumParallelCalls)
}

func TestLoad_PartialCatalogs(t *testing.T) {
	t.Parallel()

	r := registry.New("demo", &bytes.Buffer{})
	DefineBase(r, catalog.BaseToggles{DataDir: true})
	require.NoError(t, r.Parse([]string{"-dd", "/data"}))

	s, err := Load(r)

	require.NoError(t, err)
	assert.Equal(t, "/data", s.DataDir)
	assert.Zero(t, s.BatchSize)
	assert.Nil(t, s.Hooks)
	assert.Equal(t, precision.FP32, s.Dtype)
	assert.Equal(t, 1.0, s.LossScale)
}

func TestLoad_OutOfRangeIntegerFailsAtParse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "flags.hcl")
	require.NoError(t, os.WriteFile(path, []byte("batch_size = 1e30\n"), 0600))
	r := registry.New("demo", &bytes.Buffer{})
	DefineBase(r, catalog.AllBase())

	// --- Act ---
	err := r.Parse([]string{"--flagfile", path})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected integer in range")
}
