package orchestrator

import (
	"sort"
	"time"
)

// State of one utterance task. Done and Failed are terminal.
type State int

const (
	Queued State = iota
	Running
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

func (s State) Terminal() bool { return s == Done || s == Failed }

// Task is the immutable unit of work handed to a worker.
type Task struct {
	ID     int
	OutDir string
}

type Outcome struct {
	ID      int
	State   State
	Path    string // file written, possibly partial on failure
	Lines   int    // label lines written
	Err     error
	Elapsed time.Duration
}

type Summary struct {
	Job      string
	Outcomes []Outcome // ordered by utterance id
	Skipped  []int     // ignored ids
	Elapsed  time.Duration
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
}

func (s *Summary) sort() {
	sort.Slice(s.Outcomes, func(i, j int) bool { return s.Outcomes[i].ID < s.Outcomes[j].ID })
}

func (s *Summary) Count(st State) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.State == st {
			n++
		}
	}
	return n
}

// Failed lists the ids of failed utterances, for a re-run.
func (s *Summary) Failed() []int {
	var ids []int
	for _, o := range s.Outcomes {
		if o.State == Failed {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
