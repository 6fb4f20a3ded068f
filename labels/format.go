// Package labels turns annotated utterances into HTS-style context labels,
// one line per segment.
package labels

import (
	"errors"
	"fmt"

	"github.com/maastricht-university/labelgen/features"
)

// Unknown replaces every feature that could not be resolved.
const Unknown = "x"

const (
	// MinimalSize is the vector length of a segment without higher-tier
	// context (non-speech sounds).
	MinimalSize = 12
	// FullSize is the vector length of a phone segment.
	FullSize = 55
)

var ErrVectorLength = errors.New("labels: unsupported feature vector length")

const (
	minimalTemplate = "%s %s %s^%s-%s+%s=%s@%s_%s" +
		"/A:x_x_x/B:x-x-x@x-x&x-x#x-x$x-x!x-x;x-x|x/C:x+x+x" +
		"/D:x_x/E:x+x@x+x&x+x#x+x/F:x_x" +
		"/G:x_x/H:x=x^x=x|x/I:x_x" +
		"/J:%s+%s-%s/Z:x"

	fullTemplate = "%s %s %s^%s-%s+%s=%s@%s_%s" +
		"/A:%s_%s_%s/B:%s-%s-%s@%s-%s&%s-%s#%s-%s$%s-%s!%s-%s;%s-%s|%s/C:%s+%s+%s" +
		"/D:%s_%s/E:%s+%s@%s+%s&%s+%s#%s+%s/F:%s_%s" +
		"/G:%s_%s/H:%s=%s^%s=%s|%s/I:%s_%s" +
		"/J:%s+%s-%s/Z:x"
)

// Format renders a feature vector as one label line, without the newline.
func Format(vec []features.Value) (string, error) {
	var tpl string
	switch len(vec) {
	case MinimalSize:
		tpl = minimalTemplate
	case FullSize:
		tpl = fullTemplate
	default:
		return "", fmt.Errorf("%w: %d", ErrVectorLength, len(vec))
	}
	args := make([]any, len(vec))
	for i, v := range vec {
		if v.Known() {
			args[i] = v.String()
		} else {
			args[i] = Unknown
		}
	}
	return fmt.Sprintf(tpl, args...), nil
}
