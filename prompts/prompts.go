// Package prompts - Text prompt loading for open-vocabulary detection.
package prompts

import (
	"os"
	"strings"

	"github.com/ovml/ovdet/errdefs"
)

// Sentinel is the trailing background class label the open-vocabulary
// model expects as the last prompt slot. Detections landing in this slot
// are the model's "none of the above" bucket.
const Sentinel = " "

// TextFileExtension marks a prompt argument that should be read from disk
// rather than split inline.
const TextFileExtension = ".txt"

// PromptSet is an ordered list of prompt groups. Each group holds one or
// more synonymous labels collapsed to a single class id; the group's index
// is the class id the model reports. The last group is always the
// Sentinel background slot.
type PromptSet [][]string

// Load builds a PromptSet from the CLI text argument. A value ending in
// ".txt" is read as one prompt per line (line terminators stripped, empty
// lines preserved as empty-label groups); anything else is split on commas
// with per-token whitespace trimming. The Sentinel group is always
// appended last.
func Load(arg string) (PromptSet, error) {
	var set PromptSet
	if strings.HasSuffix(arg, TextFileExtension) {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, errdefs.Config("failed to read prompt file %s: %v", arg, err)
		}
		set = fromLines(string(data))
	} else {
		for _, token := range strings.Split(arg, ",") {
			set = append(set, []string{strings.TrimSpace(token)})
		}
	}

	if set.empty() {
		return nil, errdefs.Config("text argument %q produced no prompts", arg)
	}

	return append(set, []string{Sentinel}), nil
}

// fromLines splits file content into one prompt group per line. Only the
// line terminator is stripped so that intentional inner whitespace
// survives; empty lines become empty-label groups to keep class ids
// aligned with the source file.
func fromLines(content string) PromptSet {
	lines := strings.Split(content, "\n")
	// A trailing newline yields one phantom empty line; drop it.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	set := make(PromptSet, 0, len(lines))
	for _, line := range lines {
		set = append(set, []string{strings.TrimRight(line, "\r")})
	}
	return set
}

// empty reports whether the set contains no usable prompt: no groups at
// all, or a single group whose label is blank (the result of splitting an
// empty inline argument).
func (p PromptSet) empty() bool {
	if len(p) == 0 {
		return true
	}
	for _, group := range p {
		for _, label := range group {
			if strings.TrimSpace(label) != "" {
				return false
			}
		}
	}
	return true
}

// Primary returns the display label for a class id: the first label of
// the group. Out-of-range ids map to the sentinel label.
func (p PromptSet) Primary(class int) string {
	if class < 0 || class >= len(p) || len(p[class]) == 0 {
		return Sentinel
	}
	return p[class][0]
}

// Len returns the number of prompt groups including the sentinel slot.
func (p PromptSet) Len() int {
	return len(p)
}
