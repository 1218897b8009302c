package core

import (
	"github.com/specialistvlad/trainflags/internal/hooks"
	"github.com/specialistvlad/trainflags/internal/precision"
	"github.com/specialistvlad/trainflags/internal/registry"
)

// Settings is a typed snapshot of the parsed catalog flags. Fields for flags
// that were not defined keep their zero value; optional flags without a value
// are nil.
type Settings struct {
	DataDir            string
	ModelDir           string
	TrainEpochs        int
	EpochsBetweenEvals int
	StopThreshold      *float64
	BatchSize          int
	MultiGPU           bool
	Hooks              []string
	ExportDir          *string

	NumParallelCalls          int
	InterOpParallelismThreads int
	IntraOpParallelismThreads int
	UseSyntheticData          bool
	MaxTrainSteps             *int
	Dtype                     precision.Precision
	LossScale                 float64

	DataFormat *string
}

// Load reads a Settings from a parsed registry. Hook names are resolved to
// their canonical display names.
func Load(r *registry.Registry) (*Settings, error) {
	s := &Settings{Dtype: precision.FP32, LossScale: 1}

	if r.IsDefined("data_dir") {
		s.DataDir = r.String("data_dir")
	}
	if r.IsDefined("model_dir") {
		s.ModelDir = r.String("model_dir")
	}
	if r.IsDefined("train_epochs") {
		s.TrainEpochs = r.Int("train_epochs")
	}
	if r.IsDefined("epochs_between_evals") {
		s.EpochsBetweenEvals = r.Int("epochs_between_evals")
	}
	if r.IsDefined("stop_threshold") {
		if v, ok := r.OptionalFloat("stop_threshold"); ok {
			s.StopThreshold = &v
		}
	}
	if r.IsDefined("batch_size") {
		s.BatchSize = r.Int("batch_size")
	}
	if r.IsDefined("multi_gpu") {
		s.MultiGPU = r.Bool("multi_gpu")
	}
	if r.IsDefined("hooks") {
		resolved, err := hooks.Resolve(r.List("hooks"))
		if err != nil {
			return nil, err
		}
		s.Hooks = resolved
	}
	if r.IsDefined("export_dir") {
		if v, ok := r.OptionalString("export_dir"); ok {
			s.ExportDir = &v
		}
	}

	if r.IsDefined("num_parallel_calls") {
		s.NumParallelCalls = r.Int("num_parallel_calls")
	}
	if r.IsDefined("inter_op_parallelism_threads") {
		s.InterOpParallelismThreads = r.Int("inter_op_parallelism_threads")
	}
	if r.IsDefined("intra_op_parallelism_threads") {
		s.IntraOpParallelismThreads = r.Int("intra_op_parallelism_threads")
	}
	if r.IsDefined("use_synthetic_data") {
		s.UseSyntheticData = r.Bool("use_synthetic_data")
	}
	if r.IsDefined("max_train_steps") {
		if v, ok := r.OptionalInt("max_train_steps"); ok {
			s.MaxTrainSteps = &v
		}
	}
	if r.IsDefined("dtype") {
		p, err := precision.Parse(r.String("dtype"))
		if err != nil {
			return nil, err
		}
		s.Dtype = p
		s.LossScale = LossScale(r)
	}

	if r.IsDefined("data_format") {
		if v, ok := r.OptionalString("data_format"); ok {
			s.DataFormat = &v
		}
	}

	return s, nil
}
