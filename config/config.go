package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/labelgen/annotation"
	"github.com/maastricht-university/labelgen/features"
)

var ErrInvalid = errors.New("config: invalid configuration")

// reserved breaks the tokenisation of label lines and question patterns.
const reserved = " \t/:#%"

type Tiers struct {
	Segment  string `yaml:"segment"`
	Phone    string `yaml:"phone"`
	Nss      string `yaml:"nss"`
	Syllable string `yaml:"syllable"`
	Word     string `yaml:"word"`
	POS      string `yaml:"pos"`
	Phrase   string `yaml:"phrase"`
	Signal   string `yaml:"signal"`
}

type Alphabet struct {
	// Phonemes groups phoneme symbols by phonetic category.
	Phonemes map[string][]string `yaml:"phonemes"`
	Nss      []string            `yaml:"nss"`
	// NssReplacements rewrites parts of non-speech-sound labels, on top of
	// the built-in "#" and "%" replacements.
	NssReplacements map[string]string `yaml:"nss_replacements"`
}

type Root struct {
	Tiers    Tiers    `yaml:"tiers"`
	Alphabet Alphabet `yaml:"alphabet"`
	Ignore   []int    `yaml:"ignore"`
}

// Default returns the tier names of the IRISA corpora.
func Default() *Root {
	return &Root{
		Tiers: Tiers{
			Segment:  "Segment Automatic",
			Phone:    "Allophone Automatic",
			Nss:      "NonSpeechSound Automatic",
			Syllable: "Syllable Automatic",
			Word:     "Word Liaphon",
			POS:      "POS Synapse",
			Phrase:   "Syntax Synapse",
			Signal:   "Signal",
		},
	}
}

// Load reads the document at path over the defaults and validates it.
// An empty path yields the defaults.
func Load(path string) (*Root, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Root) Roles() annotation.Roles {
	t := r.Tiers
	return annotation.Roles{
		annotation.RoleSegment:  t.Segment,
		annotation.RolePhone:    t.Phone,
		annotation.RoleNss:      t.Nss,
		annotation.RoleSyllable: t.Syllable,
		annotation.RoleWord:     t.Word,
		annotation.RolePOS:      t.POS,
		annotation.RolePhrase:   t.Phrase,
		annotation.RoleSignal:   t.Signal,
	}
}

// Params returns the label normalisation derived from the configuration.
// Longer patterns are tried first so they win over their prefixes.
func (r *Root) Params() features.Params {
	table := map[string]string{}
	def := features.DefaultParams().NssReplacements
	for i := 0; i+1 < len(def); i += 2 {
		table[def[i]] = def[i+1]
	}
	for old, repl := range r.Alphabet.NssReplacements {
		table[old] = repl
	}

	olds := make([]string, 0, len(table))
	for old := range table {
		olds = append(olds, old)
	}
	sort.Slice(olds, func(i, j int) bool {
		if len(olds[i]) != len(olds[j]) {
			return len(olds[i]) > len(olds[j])
		}
		return olds[i] < olds[j]
	})

	pairs := make([]string, 0, 2*len(olds))
	for _, old := range olds {
		pairs = append(pairs, old, table[old])
	}
	return features.Params{NssReplacements: pairs}
}

// Validate reports unmapped tier roles and malformed alphabets.
func (r *Root) Validate() error {
	roles := r.Roles()
	for _, role := range annotation.AllRoles {
		if _, err := roles.Tier(role); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}

	for cat, syms := range r.Alphabet.Phonemes {
		if cat == "" {
			return fmt.Errorf("%w: empty phoneme category", ErrInvalid)
		}
		seen := map[string]bool{}
		for _, s := range syms {
			if err := checkSymbol(s); err != nil {
				return fmt.Errorf("%w: phoneme category %q: %v", ErrInvalid, cat, err)
			}
			if seen[s] {
				return fmt.Errorf("%w: phoneme %q listed twice in %q", ErrInvalid, s, cat)
			}
			seen[s] = true
		}
	}

	for old, repl := range r.Alphabet.NssReplacements {
		if old == "" {
			return fmt.Errorf("%w: empty non-speech sound replacement pattern", ErrInvalid)
		}
		if err := checkSymbol(repl); err != nil {
			return fmt.Errorf("%w: replacement of %q: %v", ErrInvalid, old, err)
		}
	}

	nss := map[string]bool{}
	norm := strings.NewReplacer(r.Params().NssReplacements...)
	for _, s := range r.Alphabet.Nss {
		n := norm.Replace(s)
		if err := checkSymbol(n); err != nil {
			return fmt.Errorf("%w: non-speech sound %q: %v", ErrInvalid, s, err)
		}
		if nss[n] {
			return fmt.Errorf("%w: non-speech sound %q listed twice", ErrInvalid, n)
		}
		nss[n] = true
	}
	return nil
}

func checkSymbol(s string) error {
	if s == "" {
		return errors.New("empty symbol")
	}
	if i := strings.IndexAny(s, reserved); i >= 0 {
		return fmt.Errorf("symbol %q contains reserved delimiter %q", s, s[i])
	}
	return nil
}

// Ignored reports whether id is on the ignore list.
func (r *Root) Ignored(id int) bool {
	for _, i := range r.Ignore {
		if i == id {
			return true
		}
	}
	return false
}
