package labels

import (
	"bufio"
	"io"

	"github.com/maastricht-university/labelgen/annotation"
	"github.com/maastricht-university/labelgen/features"
)

// Write emits the label lines of utt in segment order and returns how many
// were written. Lines written before a failure are flushed to w.
func Write(w io.Writer, utt annotation.Utterance, roles annotation.Roles, p features.Params) (n int, err error) {
	a, err := NewAssembler(utt, roles, p)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()

	for seg := 0; seg < a.Segments(); seg++ {
		vec, err := a.Vector(seg)
		if err != nil {
			return n, err
		}
		line, err := Format(vec)
		if err != nil {
			return n, err
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
