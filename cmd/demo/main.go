// Command demo runs an open-vocabulary object detector over one image or a
// directory of images against a user-supplied list of text prompts, and
// writes annotated copies into the output directory.
//
// Usage:
//
//	demo [flags] <config> <checkpoint> <image> <text>
//
// The text argument is either a path to a .txt file with one prompt per
// line, or a comma-separated inline list.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"gocv.io/x/gocv"

	"github.com/ovml/ovdet/annotate"
	"github.com/ovml/ovdet/config"
	"github.com/ovml/ovdet/errdefs"
	"github.com/ovml/ovdet/images"
	"github.com/ovml/ovdet/inference"
	"github.com/ovml/ovdet/inference/providers"
	"github.com/ovml/ovdet/postprocess"
	"github.com/ovml/ovdet/prompts"
)

// stringList collects a repeatable flag into a slice.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func parseArgs() (*config.RunConfig, error) {
	rc := &config.RunConfig{}
	var cfgOptions stringList

	flag.IntVar(&rc.TopK, "topk", 100, "keep topk predictions")
	scoreThreshold := flag.Float64("threshold", 0.0, "confidence score threshold for predictions")
	flag.StringVar(&rc.Device, "device", "cuda:0", "device used for inference")
	flag.BoolVar(&rc.Show, "show", false, "show the detection results")
	flag.BoolVar(&rc.AMP, "amp", false, "use mixed precision for inference")
	flag.StringVar(&rc.OutputDir, "output-dir", "demo_outputs", "the directory to save outputs")
	nmsThreshold := flag.Float64("nms-threshold", 0.0, "apply greedy NMS above this IoU (0 disables)")
	flag.Var(&cfgOptions, "cfg-options", "override model config entries, KEY=VALUE (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] <config> <checkpoint> <image> <text>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 4 {
		return nil, errdefs.Config("expected 4 positional arguments (config checkpoint image text), got %d", len(args))
	}

	rc.ConfigPath = args[0]
	rc.Checkpoint = args[1]
	rc.Image = args[2]
	rc.Text = args[3]
	rc.Threshold = float32(*scoreThreshold)
	rc.NMSThreshold = float32(*nmsThreshold)
	rc.CfgOptions = cfgOptions
	return rc, nil
}

func main() {
	rc, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(rc); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

// run executes the whole batch. Any error aborts the run immediately;
// images annotated before the failure stay on disk.
func run(rc *config.RunConfig) error {
	config.LoadEnv()

	texts, err := prompts.Load(rc.Text)
	if err != nil {
		return err
	}

	model, err := config.LoadModel(rc.ConfigPath, rc.CfgOptions)
	if err != nil {
		return err
	}

	device, err := providers.Parse(rc.Device)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(rc.OutputDir, 0o755); err != nil {
		return errdefs.IO("failed to create output directory %s: %v", rc.OutputDir, err)
	}

	runner, err := inference.NewRunner(inference.RunnerConfig{
		Model:      model,
		Checkpoint: rc.Checkpoint,
		Device:     device,
		AMP:        rc.AMP,
		Classes:    texts.Len(),
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	jobs, err := images.ResolveJobs(rc.Image)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %s on %s (%d prompts, threshold %.2f, topk %d)\n",
		rc.Checkpoint, rc.Device, texts.Len()-1, rc.Threshold, rc.TopK)
	fmt.Printf("Processing %d image(s) into %s\n", len(jobs), rc.OutputDir)

	bar := progressbar.Default(int64(len(jobs)))
	for _, job := range jobs {
		if err := processImage(runner, rc, texts, job); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

func processImage(runner *inference.Runner, rc *config.RunConfig, texts prompts.PromptSet, job string) error {
	mat := gocv.IMRead(job, gocv.IMReadColor)
	if mat.Empty() {
		return errdefs.IO("failed to decode image %s", job)
	}
	defer mat.Close()

	src, err := mat.ToImage()
	if err != nil {
		return errdefs.IO("failed to convert image %s: %v", job, err)
	}

	raw, err := runner.Detect(src)
	if err != nil {
		return err
	}

	dets := postprocess.FilterByScore(raw, rc.Threshold)
	dets = postprocess.TopK(dets, rc.TopK)
	if rc.NMSThreshold > 0 {
		dets = postprocess.GreedyNMS(dets, rc.NMSThreshold)
	}

	annotate.Draw(&mat, dets, texts)
	if err := annotate.Write(mat, rc.OutputDir, job); err != nil {
		return err
	}

	if rc.Show {
		annotate.Show(mat, job)
	}
	return nil
}
