package catalog

import (
	"github.com/specialistvlad/trainflags/internal/conventions"
	"github.com/specialistvlad/trainflags/internal/precision"
	"github.com/specialistvlad/trainflags/internal/registry"
)

// Performance flag defaults.
const (
	DefaultNumParallelCalls = 5
	DefaultDtype            = "fp32"
)

// PerformanceToggles selects which performance flags to define. Dtype covers
// both --dtype and --loss_scale.
type PerformanceToggles struct {
	NumParallelCalls bool
	InterOp          bool
	IntraOp          bool
	SyntheticData    bool
	MaxTrainSteps    bool
	Dtype            bool
}

// AllPerformance enables every performance flag.
func AllPerformance() PerformanceToggles {
	return PerformanceToggles{
		NumParallelCalls: true,
		InterOp:          true,
		IntraOp:          true,
		SyntheticData:    true,
		MaxTrainSteps:    true,
		Dtype:            true,
	}
}

// DefinePerformance registers flags that tune throughput and numeric precision.
func DefinePerformance(r *registry.Registry, t PerformanceToggles) []string {
	var keyFlags []string

	if t.NumParallelCalls {
		r.DefineInt("num_parallel_calls", "npc", DefaultNumParallelCalls, conventions.HelpWrap(
			"The number of records that are processed in parallel during input processing. "+
				"This can be optimized per data set but for generally homogeneous data sets, "+
				"should be approximately the number of available CPU cores."))
		r.AddValidator(positive("num_parallel_calls"))
		keyFlags = append(keyFlags, "num_parallel_calls")
	}

	if t.InterOp {
		r.DefineInt("inter_op_parallelism_threads", "inter", 0, conventions.HelpWrap(
			"Number of inter_op_parallelism_threads to use for CPU. 0 lets the runtime decide."))
	}

	if t.IntraOp {
		r.DefineInt("intra_op_parallelism_threads", "intra", 0, conventions.HelpWrap(
			"Number of intra_op_parallelism_threads to use for CPU. 0 lets the runtime decide."))
	}

	if t.SyntheticData {
		r.DefineBool("use_synthetic_data", "synth", false, conventions.HelpWrap(
			"If set, use fake data (zeroes) instead of a real dataset. This mode is useful for "+
				"performance debugging, as it removes input processing steps, but will not learn anything."))
		keyFlags = append(keyFlags, "use_synthetic_data")
	}

	if t.MaxTrainSteps {
		r.DefineOptionalInt("max_train_steps", "mts", conventions.HelpWrap(
			"The model will stop training if the global step reaches this value. If not set, "+
				"training will run until the specified number of epochs have run as usual. It is "+
				"generally recommended to set --train_epochs=1 when using this flag."))
		r.AddValidator(positive("max_train_steps"))
		keyFlags = append(keyFlags, "max_train_steps")
	}

	if t.Dtype {
		labels := precision.Labels()
		r.DefineString("dtype", "dt", DefaultDtype, conventions.HelpWrap(
			"The numeric type used for calculations. Variables may be cast to a higher precision "+
				"on a case-by-case basis for numerical stability.\n"+conventions.ChoicesString(labels)))
		r.AddValidator(oneOf("dtype", labels, false))

		r.DefineOptionalFloat("loss_scale", "ls", conventions.HelpWrap(
			"The amount to scale the loss by when the model is run. Before gradients are computed, "+
				"the loss is multiplied by the loss scale, making all gradients loss_scale times larger. "+
				"To adjust for this, gradients are divided by the loss scale before being applied to "+
				"variables. This is mathematically equivalent to training without a loss scale, but the "+
				"loss scale helps avoid some intermediate gradients from underflowing to zero. If not "+
				"provided the default for fp16 is 128 and 1 for all other dtypes."))
		r.AddValidator(positive("loss_scale"))
		keyFlags = append(keyFlags, "dtype", "loss_scale")
	}

	return keyFlags
}
