package inference

import (
	"image"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ovml/ovdet/config"
	"github.com/ovml/ovdet/errdefs"
	"github.com/ovml/ovdet/inference/providers"
	"github.com/ovml/ovdet/postprocess"
)

// RunnerConfig assembles everything needed to build a detector session.
type RunnerConfig struct {
	// Model is the decoded model config file.
	Model *config.Model
	// Checkpoint is the path to the exported .onnx file.
	Checkpoint string
	// Device selects the execution provider.
	Device providers.Device
	// AMP requests reduced-precision execution where supported.
	AMP bool
	// Classes is the prompt slot count, sentinel included. The output
	// tensor shape depends on it, so the session is bound to one
	// PromptSet for its whole lifetime.
	Classes int
}

// Runner owns the loaded model session. It is constructed once per run
// and never mutated afterwards; images are fed through it one at a time.
type Runner struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	model   config.Model
	classes int
}

// NewRunner loads the checkpoint and prepares the input/output tensors.
// Failures here (missing library, missing or corrupt checkpoint,
// unavailable provider) are fatal to the run.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Classes <= 0 {
		return nil, errdefs.Config("runner needs at least one prompt class")
	}
	if err := initEnvironment(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Checkpoint); err != nil {
		return nil, errdefs.ModelLoad("checkpoint not found at %s: %v", cfg.Checkpoint, err)
	}

	in := cfg.Model.Input
	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, int64(in.Height), int64(in.Width)))
	if err != nil {
		return nil, errdefs.ModelLoad("failed to create input tensor: %v", err)
	}

	out := cfg.Model.Output
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+cfg.Classes), int64(out.Anchors)))
	if err != nil {
		inputTensor.Destroy()
		return nil, errdefs.ModelLoad("failed to create output tensor: %v", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errdefs.ModelLoad("failed to create session options: %v", err)
	}
	defer options.Destroy()

	options.SetIntraOpNumThreads(4)
	options.SetInterOpNumThreads(2)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	if err := cfg.Device.Apply(options, cfg.AMP); err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, err
	}

	session, err := ort.NewAdvancedSession(
		cfg.Checkpoint,
		[]string{in.Name},
		[]string{out.Name},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errdefs.ModelLoad("failed to load checkpoint %s: %v", cfg.Checkpoint, err)
	}

	return &Runner{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
		model:   *cfg.Model,
		classes: cfg.Classes,
	}, nil
}

// Detect runs one forward pass on a batch of size 1 and returns the raw
// per-instance detections in source-image pixel coordinates, without any
// confidence filtering.
func (r *Runner) Detect(src image.Image) ([]postprocess.Result, error) {
	if err := PrepareInput(src, r.model.Input, r.model.Normalize, r.input.GetData()); err != nil {
		return nil, err
	}

	if err := r.session.Run(); err != nil {
		return nil, errdefs.Compute("inference failed: %v", err)
	}

	bounds := src.Bounds()
	return DecodeOutput(
		r.output.GetData(),
		r.classes,
		r.model.Output.Anchors,
		r.model.Input.Width, r.model.Input.Height,
		bounds.Dx(), bounds.Dy(),
		r.model.Output.Logits,
	)
}

// Close releases the native session and tensors.
func (r *Runner) Close() {
	if r.input != nil {
		r.input.Destroy()
		r.input = nil
	}
	if r.output != nil {
		r.output.Destroy()
		r.output = nil
	}
	if r.session != nil {
		r.session.Destroy()
		r.session = nil
	}
}
