package labels

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/labelgen/annotation"
	"github.com/maastricht-university/labelgen/annotation/annotationtest"
	"github.com/maastricht-university/labelgen/features"
)

func writeLines(t *testing.T, utt annotation.Utterance) []string {
	t.Helper()
	var b bytes.Buffer
	n, err := Write(&b, utt, annotationtest.Roles(), features.DefaultParams())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, n)
	return lines
}

func TestMinimalUtterance(t *testing.T) {
	lines := writeLines(t, annotationtest.Minimal(0))

	assert.Equal(t, []string{
		"0 1250000 x^x-dash+a=dash@x_x/A:x_x_x/B:x-x-x@x-x&x-x#x-x$x-x!x-x;x-x|x/C:x+x+x/D:x_x/E:x+x@x+x&x+x#x+x/F:x_x/G:x_x/H:x=x^x=x|x/I:x_x/J:1+1-1/Z:x",
		"1250000 2500000 x^dash-a+dash=x@1_1/A:x_x_x/B:1-0-1@1-1&1-1#x-x$x-x!x-x;x-x|a/C:x+x+x/D:x_x/E:PREP+1@1+1&x+x#x+x/F:x_x/G:x_x/H:1=1^1=1|x/I:x_x/J:1+1-1/Z:x",
		"2500000 3750000 dash^a-dash+x=x@x_x/A:x_x_x/B:x-x-x@x-x&x-x#x-x$x-x!x-x;x-x|x/C:x+x+x/D:x_x/E:x+x@x+x&x+x#x+x/F:x_x/G:x_x/H:x=x^x=x|x/I:x_x/J:1+1-1/Z:x",
	}, lines)
}

func TestSentenceMiddleSegment(t *testing.T) {
	lines := writeLines(t, annotationtest.Sentence(0))
	require.Len(t, lines, 11)

	assert.Equal(t,
		"6250000 7500000 S^a-d+O=R@1_3/A:1_0_2/B:1-1-3@1-2&1-2#x-x$x-x!x-x;x-x|O/C:0+0+2/D:NOUN_1/E:VERB+2@1+1&x+x#x+x/F:x_x/G:2_2/H:2=1^2=1|x/I:x_x/J:4+3-2/Z:x",
		lines[5])
}

func TestVectorShapes(t *testing.T) {
	a, err := NewAssembler(annotationtest.Sentence(0), annotationtest.Roles(), features.DefaultParams())
	require.NoError(t, err)
	require.Equal(t, 11, a.Segments())

	for seg := 0; seg < a.Segments(); seg++ {
		vec, err := a.Vector(seg)
		require.NoError(t, err)
		if seg == 0 || seg == 10 {
			assert.Len(t, vec, MinimalSize, "segment %d", seg)
		} else {
			assert.Len(t, vec, FullSize, "segment %d", seg)
		}
	}

	_, err = a.Vector(11)
	assert.ErrorIs(t, err, annotation.ErrIndexOutOfRange)
}

func TestNonSpeechSegmentsCarryNssLabel(t *testing.T) {
	a, err := NewAssembler(annotationtest.Sentence(0), annotationtest.Roles(), features.DefaultParams())
	require.NoError(t, err)

	for seg, want := range map[int]string{0: "dash", 10: "percent"} {
		vec, err := a.Vector(seg)
		require.NoError(t, err)
		assert.Equal(t, want, vec[4].String())
	}
	// seen from the neighbours' windows too
	vec, err := a.Vector(1)
	require.NoError(t, err)
	assert.Equal(t, "dash", vec[3].String())
}

func TestSyllableBoundaryBlocksAreUnknown(t *testing.T) {
	lines := writeLines(t, annotationtest.Sentence(0))

	// first phone: first syllable, first word, first phrase
	assert.Contains(t, lines[1], "/A:x_x_x/")
	assert.Contains(t, lines[1], "/D:x_x/")
	assert.Contains(t, lines[1], "/G:x_x/")
	assert.Contains(t, lines[1], "/C:1+0+2/")

	// last phone: last syllable, last word, last phrase
	assert.Contains(t, lines[9], "/C:x+x+x/")
	assert.Contains(t, lines[9], "/F:x_x/")
	assert.Contains(t, lines[9], "/I:x_x/")
	assert.Contains(t, lines[9], "/A:1_1_3/")
}

func TestInconsistentPhoneFailsWithPartialOutput(t *testing.T) {
	b := annotationtest.New(7)
	b.Segment(0, 0.125)
	b.Segment(0.125, 0.25)
	b.Add(annotation.RoleNss, annotation.Item{Label: "sil"})
	b.Add(annotation.RolePhone, annotation.Item{Label: "a"})
	b.Link(annotation.RoleSegment, annotation.RoleNss, 0, 0).
		Link(annotation.RoleSegment, annotation.RolePhone, 1, 0).
		Declare(annotation.RolePhone, annotation.RoleSyllable)

	var out bytes.Buffer
	n, err := Write(&out, b.Doc(), annotationtest.Roles(), features.DefaultParams())
	assert.ErrorIs(t, err, ErrInconsistent)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.True(t, strings.HasPrefix(out.String(), "0 1250000 x^x-sil+a=x@x_x/A:x_x_x/"))
}

func TestFormatRejectsOtherLengths(t *testing.T) {
	for _, n := range []int{0, 11, 13, 54, 56} {
		_, err := Format(make([]features.Value, n))
		assert.ErrorIs(t, err, ErrVectorLength, "length %d", n)
	}

	line, err := Format(make([]features.Value, FullSize))
	require.NoError(t, err)
	assert.Equal(t, 0, strings.Count(line, "%"))
	assert.True(t, strings.HasSuffix(line, "/J:x+x-x/Z:x"))
}
