package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/maastricht-university/labelgen/annotation"
	"github.com/maastricht-university/labelgen/features"
	"github.com/maastricht-university/labelgen/labels"
)

// Job is the per-utterance work run by the pipeline. Implementations keep no
// per-task state; everything task specific arrives through the arguments.
type Job interface {
	Name() string
	// Ext is the extension of the <id><ext> file the job writes.
	Ext() string
	Run(ctx context.Context, utt annotation.Utterance, t Task) (Outcome, error)
}

// LabelJob writes <id>.lab, one context label per segment.
type LabelJob struct {
	Roles  annotation.Roles
	Params features.Params
}

func (LabelJob) Name() string { return "labels" }
func (LabelJob) Ext() string { return LabelExt }

func (j LabelJob) Run(_ context.Context, utt annotation.Utterance, t Task) (o Outcome, err error) {
	f, path, err := createOutput(t.OutDir, t.ID, j.Ext())
	if err != nil {
		return o, err
	}
	o.Path = path
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	o.Lines, err = labels.Write(f, utt, j.Roles, j.Params)
	return o, err
}

var ErrNoSignal = errors.New("orchestrator: utterance has no signal")

// SignalJob copies the audio file of an utterance to <id>.wav.
type SignalJob struct {
	Roles annotation.Roles
	// BaseDir resolves relative signal paths.
	BaseDir string
}

func (SignalJob) Name() string { return "signal" }
func (SignalJob) Ext() string { return SignalExt }

func (j SignalJob) Run(_ context.Context, utt annotation.Utterance, t Task) (o Outcome, err error) {
	tier, err := j.Roles.Tier(annotation.RoleSignal)
	if err != nil {
		return o, err
	}
	n, err := utt.Count(tier)
	if err != nil {
		return o, err
	}
	if n == 0 {
		return o, ErrNoSignal
	}
	sig, err := utt.Item(tier, 0)
	if err != nil {
		return o, err
	}
	if sig.File == "" {
		return o, fmt.Errorf("%w: empty file name", ErrNoSignal)
	}
	src := sig.File
	if !filepath.IsAbs(src) && j.BaseDir != "" {
		src = filepath.Join(j.BaseDir, src)
	}

	f, path, err := createOutput(t.OutDir, t.ID, j.Ext())
	if err != nil {
		return o, err
	}
	o.Path = path
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = copyFile(f, src)
	return o, err
}
