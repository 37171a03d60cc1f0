package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovml/ovdet/errdefs"
)

func TestLoadInlineAppendsSentinel(t *testing.T) {
	set, err := Load("cat,dog")
	require.NoError(t, err)

	require.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"cat"}, set[0])
	assert.Equal(t, []string{"dog"}, set[1])
	assert.Equal(t, []string{Sentinel}, set[2])
}

func TestLoadInlineTrimsTokenWhitespace(t *testing.T) {
	set, err := Load(" person , traffic light ,bus")
	require.NoError(t, err)

	require.Equal(t, 4, set.Len())
	assert.Equal(t, "person", set.Primary(0))
	assert.Equal(t, "traffic light", set.Primary(1))
	assert.Equal(t, "bus", set.Primary(2))
}

func TestLoadInlineSentinelCountProperty(t *testing.T) {
	// len(PromptSet) == token count + 1 for any comma list.
	for _, arg := range []string{"cat", "cat,dog", "a,b,c,d,e"} {
		set, err := Load(arg)
		require.NoError(t, err)

		tokens := 1
		for _, r := range arg {
			if r == ',' {
				tokens++
			}
		}
		assert.Equal(t, tokens+1, set.Len(), "arg=%q", arg)
	}
}

func TestLoadEmptyInlineFails(t *testing.T) {
	for _, arg := range []string{"", "   ", " , "} {
		_, err := Load(arg)
		require.Error(t, err, "arg=%q", arg)
		assert.True(t, errors.Is(err, errdefs.ErrConfig))
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\r\ndog\nred car\n"), 0o644))

	set, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 4, set.Len())
	assert.Equal(t, "cat", set.Primary(0))
	assert.Equal(t, "dog", set.Primary(1))
	assert.Equal(t, "red car", set.Primary(2))
	assert.Equal(t, Sentinel, set.Primary(3))
}

func TestLoadFromFilePreservesEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\n\ndog\n"), 0o644))

	set, err := Load(path)
	require.NoError(t, err)

	// The blank line keeps its class id slot.
	require.Equal(t, 4, set.Len())
	assert.Equal(t, "", set.Primary(1))
	assert.Equal(t, "dog", set.Primary(2))
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrConfig))
}

func TestPrimaryOutOfRange(t *testing.T) {
	set, err := Load("cat")
	require.NoError(t, err)

	assert.Equal(t, Sentinel, set.Primary(-1))
	assert.Equal(t, Sentinel, set.Primary(set.Len()))
}
