package annotate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovml/ovdet/images"
	"github.com/ovml/ovdet/postprocess"
	"github.com/ovml/ovdet/prompts"
)

func TestLabelFormat(t *testing.T) {
	set, err := prompts.Load("cat,dog")
	require.NoError(t, err)

	det := postprocess.Result{
		Box:   images.Rect{X1: 10, Y1: 10, X2: 50, Y2: 50},
		Score: 0.73,
		Class: 1,
	}

	assert.Equal(t, "dog 0.73", Label(set, det))
}

func TestLabelRoundsToTwoDecimals(t *testing.T) {
	set, err := prompts.Load("cat")
	require.NoError(t, err)

	assert.Equal(t, "cat 0.68", Label(set, postprocess.Result{Score: 0.675, Class: 0}))
	assert.Equal(t, "cat 1.00", Label(set, postprocess.Result{Score: 1.0, Class: 0}))
}

func TestLabelSentinelClass(t *testing.T) {
	set, err := prompts.Load("cat")
	require.NoError(t, err)

	// Class 1 is the appended sentinel slot.
	assert.Equal(t, prompts.Sentinel+" 0.50", Label(set, postprocess.Result{Score: 0.5, Class: 1}))
}

func TestOutputPathUsesBasename(t *testing.T) {
	got := OutputPath("demo_outputs", filepath.Join("data", "images", "street.jpg"))
	assert.Equal(t, filepath.Join("demo_outputs", "street.jpg"), got)
}
