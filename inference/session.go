// Package inference - ONNX Runtime session ownership and the forward pass.
package inference

import (
	"os"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ovml/ovdet/errdefs"
)

// ORTLibEnv overrides the platform default path to the onnxruntime shared
// library. Useful when the library is installed outside the repo tree.
const ORTLibEnv = "OVDET_ORT_LIB"

// sharedLibPath locates the onnxruntime shared library for the current
// platform, honoring the ORTLibEnv override.
func sharedLibPath() (string, error) {
	if path := os.Getenv(ORTLibEnv); path != "" {
		return path, nil
	}

	switch runtime.GOOS {
	case "windows":
		return "third_party/onnxruntime.dll", nil
	case "darwin":
		return "third_party/libonnxruntime.dylib", nil
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.so", nil
		}
		return "third_party/onnxruntime.so", nil
	}
	return "", errdefs.ModelLoad("no onnxruntime library known for %s/%s; set %s", runtime.GOOS, runtime.GOARCH, ORTLibEnv)
}

// initEnvironment points ONNX Runtime at the shared library and
// initializes the native environment once per process.
func initEnvironment() error {
	if ort.IsInitialized() {
		return nil
	}

	libPath, err := sharedLibPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(libPath); err != nil {
		return errdefs.ModelLoad("onnxruntime library not found at %s: %v", libPath, err)
	}

	ort.SetSharedLibraryPath(libPath)
	if err := ort.InitializeEnvironment(); err != nil {
		return errdefs.ModelLoad("failed to initialize onnxruntime environment: %v", err)
	}
	return nil
}
