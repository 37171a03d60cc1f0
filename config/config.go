// Package config - Run configuration and model config file loading.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ovml/ovdet/errdefs"
)

// RunConfig is the immutable per-run configuration resolved once from the
// command line. It is never mutated after startup.
type RunConfig struct {
	// Positional arguments.
	ConfigPath string
	Checkpoint string
	Image      string
	Text       string

	// Flags.
	TopK         int
	Threshold    float32
	Device       string
	Show         bool
	AMP          bool
	OutputDir    string
	NMSThreshold float32
	CfgOptions   []string
}

// Model describes the exported ONNX model: tensor names, input geometry,
// output layout and pixel normalization. It is loaded from the YAML file
// given as the config positional argument.
type Model struct {
	Input     Input     `yaml:"input"`
	Output    Output    `yaml:"output"`
	Normalize Normalize `yaml:"normalize"`
}

// Input names the input tensor and its spatial shape.
type Input struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Output names the output tensor and its candidate-instance count. Logits
// marks exports that emit raw class logits instead of probabilities, in
// which case scores are squashed through a sigmoid during decode.
type Output struct {
	Name    string `yaml:"name"`
	Anchors int    `yaml:"anchors"`
	Logits  bool   `yaml:"logits"`
}

// Normalize holds per-channel mean/std applied after the 1/255 scale.
// A zero std channel means "leave as-is" and is replaced by 1.
type Normalize struct {
	Mean [3]float32 `yaml:"mean"`
	Std  [3]float32 `yaml:"std"`
}

// LoadEnv pulls in an optional .env file. Missing files are fine; the
// process environment always wins.
func LoadEnv() {
	_ = godotenv.Load()
}

// LoadModel reads the model config YAML and merges any KEY=VALUE overrides
// (dotted keys, e.g. "input.width=512") into the document before binding.
func LoadModel(path string, overrides []string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.Config("failed to read model config %s: %v", path, err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errdefs.Config("failed to parse model config %s: %v", path, err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	for _, pair := range overrides {
		if err := applyOverride(doc, pair); err != nil {
			return nil, err
		}
	}

	merged, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errdefs.Config("failed to re-encode model config: %v", err)
	}

	var model Model
	if err := yaml.Unmarshal(merged, &model); err != nil {
		return nil, errdefs.Config("model config %s does not match the expected schema: %v", path, err)
	}

	model.applyDefaults()
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

// applyOverride merges one "a.b.c=value" pair into the decoded document,
// creating intermediate mappings as needed. Values are decoded as YAML
// scalars so numbers and booleans keep their types.
func applyOverride(doc map[string]interface{}, pair string) error {
	key, raw, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return errdefs.Config("cfg-option %q is not in KEY=VALUE form", pair)
	}

	var value interface{}
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return errdefs.Config("cfg-option %q has an unparsable value: %v", pair, err)
	}

	parts := strings.Split(key, ".")
	node := doc
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return nil
}

func (m *Model) applyDefaults() {
	for i := range m.Normalize.Std {
		if m.Normalize.Std[i] == 0 {
			m.Normalize.Std[i] = 1
		}
	}
}

func (m *Model) validate() error {
	switch {
	case m.Input.Name == "":
		return errdefs.Config("model config is missing input.name")
	case m.Input.Width <= 0 || m.Input.Height <= 0:
		return errdefs.Config("model config input shape %dx%d is invalid", m.Input.Width, m.Input.Height)
	case m.Output.Name == "":
		return errdefs.Config("model config is missing output.name")
	case m.Output.Anchors <= 0:
		return errdefs.Config("model config output.anchors %d is invalid", m.Output.Anchors)
	}
	return nil
}
