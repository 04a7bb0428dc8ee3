package scenario

import (
	"fmt"
	"strings"
)

// Sample selects one of the built-in sample texts written to a control before
// a text scenario runs.
type Sample string

const (
	SampleNone        Sample = ""
	SampleEmpty       Sample = "empty"
	SampleSingleLine  Sample = "single-line"
	SampleMultiLine   Sample = "multi-line"
	SampleParagraphs  Sample = "paragraphs"
	SampleMixedScript Sample = "mixed-script"
	SampleLineBreaks  Sample = "line-breaks"
)

// Samples lists the selectable samples.
var Samples = []Sample{SampleEmpty, SampleSingleLine, SampleMultiLine, SampleParagraphs, SampleMixedScript, SampleLineBreaks}

var sampleText = map[Sample]string{
	SampleEmpty:       "",
	SampleSingleLine:  "String 1 String 2 String 3",
	SampleMultiLine:   "The first line of the sample.\r\nThe second line.\r\n\r\nA line after a blank one.",
	SampleParagraphs:  "First paragraph,\u2028still the first.\u2029Second paragraph.\nThird paragraph ends here.",
	SampleMixedScript: "Grüße aus Zürich. 東京 مرحبا שלום été 👍🏽 fin",
	SampleLineBreaks:  "\r\n",
}

// Text returns the sample's text.
func (s Sample) Text() string { return sampleText[s] }

// ParseSample converts a flag value to a Sample. An empty string selects no sample.
func ParseSample(s string) (Sample, error) {
	if s == "" {
		return SampleNone, nil
	}
	for _, sample := range Samples {
		if strings.EqualFold(s, string(sample)) {
			return sample, nil
		}
	}
	names := make([]string, len(Samples))
	for i, sample := range Samples {
		names[i] = string(sample)
	}
	return SampleNone, fmt.Errorf("unknown sample: %q (expected %s)", s, strings.Join(names, ", "))
}
