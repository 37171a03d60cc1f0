// Package providers - Execution provider selection for ONNX Runtime.
package providers

import (
	"strconv"
	"strings"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ovml/ovdet/errdefs"
)

// Backend identifies an ONNX Runtime execution provider.
type Backend string

const (
	// CPU runs on the default CPU provider.
	CPU Backend = "cpu"
	// CUDA runs on an NVIDIA GPU.
	CUDA Backend = "cuda"
	// CoreML runs on Apple's CoreML provider.
	CoreML Backend = "coreml"
	// OpenVINO runs on Intel's OpenVINO provider.
	OpenVINO Backend = "openvino"
)

// Device is a parsed device selector, e.g. "cuda:0" or "cpu".
type Device struct {
	Backend Backend
	ID      int
}

// Parse interprets a device string of the form "<backend>[:<id>]".
func Parse(s string) (Device, error) {
	name, idPart, hasID := strings.Cut(s, ":")

	dev := Device{Backend: Backend(strings.ToLower(name))}
	switch dev.Backend {
	case CPU, CUDA, CoreML, OpenVINO:
	default:
		return Device{}, errdefs.Config("unknown device %q (want cpu, cuda[:N], coreml or openvino)", s)
	}

	if hasID {
		id, err := strconv.Atoi(idPart)
		if err != nil || id < 0 {
			return Device{}, errdefs.Config("device %q has an invalid ordinal", s)
		}
		dev.ID = id
	}
	return dev, nil
}

// Apply appends the device's execution provider to the session options.
// fp16 requests reduced-precision execution where the provider supports a
// precision hint; providers without one run at their default precision.
func (d Device) Apply(opts *ort.SessionOptions, fp16 bool) error {
	switch d.Backend {
	case CPU:
		return nil

	case CUDA:
		cudaOpts, err := ort.NewCUDAProviderOptions()
		if err != nil {
			return errdefs.Compute("failed to create CUDA provider options: %v", err)
		}
		defer cudaOpts.Destroy()
		if err := cudaOpts.Update(map[string]string{
			"device_id": strconv.Itoa(d.ID),
		}); err != nil {
			return errdefs.Compute("failed to configure CUDA device %d: %v", d.ID, err)
		}
		if err := opts.AppendExecutionProviderCUDA(cudaOpts); err != nil {
			return errdefs.Compute("failed to enable CUDA provider: %v", err)
		}
		return nil

	case CoreML:
		if err := opts.AppendExecutionProviderCoreML(0); err != nil {
			return errdefs.Compute("failed to enable CoreML provider: %v", err)
		}
		return nil

	case OpenVINO:
		precision := "FP32"
		if fp16 {
			precision = "FP16"
		}
		if err := opts.AppendExecutionProviderOpenVINO(map[string]string{
			"device_type": "CPU",
			"precision":   precision,
		}); err != nil {
			return errdefs.Compute("failed to enable OpenVINO provider: %v", err)
		}
		return nil
	}

	return errdefs.Compute("no provider wiring for backend %q", d.Backend)
}
