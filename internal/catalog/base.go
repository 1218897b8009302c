package catalog

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/trainflags/internal/conventions"
	"github.com/specialistvlad/trainflags/internal/hooks"
	"github.com/specialistvlad/trainflags/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Base flag defaults.
const (
	DefaultDataDir            = "/tmp"
	DefaultModelDir           = "/tmp"
	DefaultTrainEpochs        = 1
	DefaultEpochsBetweenEvals = 1
	DefaultBatchSize          = 32
	DefaultHooks              = hooks.LoggingTensorHook
)

// BaseToggles selects which base flags to define.
type BaseToggles struct {
	DataDir            bool
	ModelDir           bool
	TrainEpochs        bool
	EpochsBetweenEvals bool
	StopThreshold      bool
	BatchSize          bool
	MultiGPU           bool
	Hooks              bool
	ExportDir          bool
}

// AllBase enables every base flag.
func AllBase() BaseToggles {
	return BaseToggles{
		DataDir:            true,
		ModelDir:           true,
		TrainEpochs:        true,
		EpochsBetweenEvals: true,
		StopThreshold:      true,
		BatchSize:          true,
		MultiGPU:           true,
		Hooks:              true,
		ExportDir:          true,
	}
}

// DefineBase registers the data, duration and batch flags shared by every
// training script.
func DefineBase(r *registry.Registry, t BaseToggles) []string {
	var keyFlags []string

	if t.DataDir {
		r.DefineString("data_dir", "dd", DefaultDataDir,
			conventions.HelpWrap("The location of the input data."))
		keyFlags = append(keyFlags, "data_dir")
	}

	if t.ModelDir {
		r.DefineString("model_dir", "md", DefaultModelDir,
			conventions.HelpWrap("The location of the model checkpoint files."))
		keyFlags = append(keyFlags, "model_dir")
	}

	if t.TrainEpochs {
		r.DefineInt("train_epochs", "te", DefaultTrainEpochs,
			conventions.HelpWrap("The number of epochs used to train."))
		r.AddValidator(positive("train_epochs"))
		keyFlags = append(keyFlags, "train_epochs")
	}

	if t.EpochsBetweenEvals {
		r.DefineInt("epochs_between_evals", "ebe", DefaultEpochsBetweenEvals,
			conventions.HelpWrap("The number of training epochs to run between evaluations."))
		r.AddValidator(positive("epochs_between_evals"))
		keyFlags = append(keyFlags, "epochs_between_evals")
	}

	if t.StopThreshold {
		r.DefineOptionalFloat("stop_threshold", "st",
			conventions.HelpWrap("If passed, training will stop at the earlier of train_epochs "+
				"and when the evaluation metric is greater than or equal to stop_threshold."))
	}

	if t.BatchSize {
		r.DefineInt("batch_size", "bs", DefaultBatchSize,
			conventions.HelpWrap("Batch size for training and evaluation."))
		r.AddValidator(positive("batch_size"))
		keyFlags = append(keyFlags, "batch_size")
	}

	if t.MultiGPU {
		r.DefineBool("multi_gpu", "", false,
			conventions.HelpWrap("If set, run across all available GPUs."))
		keyFlags = append(keyFlags, "multi_gpu")
	}

	if t.Hooks {
		r.DefineList("hooks", "hk", []string{DefaultHooks}, conventions.HelpWrap(fmt.Sprintf(
			"A comma separated list of (case insensitive) strings to specify the names of training hooks.\n"+
				"%s\n"+
				"  Example: `--hooks ProfilerHook,ExamplesPerSecondHook`\n"+
				"  (or)     `-hk p,eps`", hooks.Table())))
		r.AddValidator(registry.NewValidator("hooks", func(v cty.Value) registry.Result {
			if v.IsNull() {
				return registry.Pass()
			}
			var names []string
			for _, e := range v.AsValueSlice() {
				names = append(names, e.AsString())
			}
			if _, err := hooks.Resolve(names); err != nil {
				return registry.Fail("%s", strings.TrimSpace(err.Error()))
			}
			return registry.Pass()
		}))
		keyFlags = append(keyFlags, "hooks")
	}

	if t.ExportDir {
		keyFlags = append(keyFlags, defineExportDir(r)...)
	}

	return keyFlags
}
