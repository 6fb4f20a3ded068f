// Package features computes the contextual features of one utterance.
//
// Every feature is a pure function registered under a fixed Name. It reads
// the annotation through an Extractor and returns a Value, which is unknown
// when the annotation holds no data for it. Errors are reserved for missing
// tiers, relations or roles and for inconsistent annotations.
package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/maastricht-university/labelgen/annotation"
)

var (
	ErrUnknownFeature = errors.New("features: unknown feature")
	ErrInconsistent   = errors.New("features: inconsistent annotation")
)

type Name string

const (
	StartSegment Name = "StartSegment"
	EndSegment   Name = "EndSegment"

	PhoneIndex        Name = "PhoneIndex"
	PhoneLabel        Name = "PhoneLabel"
	NssIndex          Name = "NssIndex"
	NssLabel          Name = "NssLabel"
	PhoneInSyllableFW Name = "PhoneInSyllableFW"
	PhoneInSyllableBW Name = "PhoneInSyllableBW"

	SyllableIndex        Name = "SyllableIndex"
	SyllableIsStressed   Name = "SyllableIsStressed"
	SyllableIsProminent  Name = "SyllableIsProminent"
	SyllableSizeInPhones Name = "SyllableSizeInPhones"
	SyllableInWordFW     Name = "SyllableInWordFW"
	SyllableInWordBW     Name = "SyllableInWordBW"
	SyllableInPhraseFW   Name = "SyllableInPhraseFW"
	SyllableInPhraseBW   Name = "SyllableInPhraseBW"
	SyllableVowel        Name = "SyllableVowel"

	WordIndex          Name = "WordIndex"
	WordPOS            Name = "WordPOS"
	WordSizeInSyllable Name = "WordSizeInSyllable"
	WordInPhraseFW     Name = "WordInPhraseFW"
	WordInPhraseBW     Name = "WordInPhraseBW"

	PhraseIndex          Name = "PhraseIndex"
	PhraseSizeInSyllable Name = "PhraseSizeInSyllable"
	PhraseSizeInWord     Name = "PhraseSizeInWord"
	PhraseInUtteranceFW  Name = "PhraseInUtteranceFW"
	PhraseInUtteranceBW  Name = "PhraseInUtteranceBW"

	UtteranceSizeInSyllable Name = "UtteranceSizeInSyllable"
	UtteranceSizeInWord     Name = "UtteranceSizeInWord"
	UtteranceSizeInPhrase   Name = "UtteranceSizeInPhrase"
)

// Func computes one feature for the item at index of the feature's home tier.
type Func func(e *Extractor, index int) (Value, error)

var registry = map[Name]Func{
	StartSegment: startSegment,
	EndSegment:   endSegment,

	PhoneIndex:        indexVia(annotation.RoleSegment, annotation.RolePhone),
	PhoneLabel:        itemLabel(annotation.RolePhone),
	NssIndex:          indexVia(annotation.RoleSegment, annotation.RoleNss),
	NssLabel:          nssLabel,
	PhoneInSyllableFW: positionFW(annotation.RolePhone, annotation.RoleSyllable),
	PhoneInSyllableBW: positionBW(annotation.RolePhone, annotation.RoleSyllable),

	SyllableIndex:        indexVia(annotation.RolePhone, annotation.RoleSyllable),
	SyllableIsStressed:   syllableIsStressed,
	SyllableIsProminent:  syllableIsProminent,
	SyllableSizeInPhones: sizeIn(annotation.RoleSyllable, annotation.RolePhone),
	SyllableInWordFW:     positionFW(annotation.RoleSyllable, annotation.RoleWord),
	SyllableInWordBW:     positionBW(annotation.RoleSyllable, annotation.RoleWord),
	SyllableInPhraseFW:   positionFW(annotation.RoleSyllable, annotation.RolePhrase),
	SyllableInPhraseBW:   positionBW(annotation.RoleSyllable, annotation.RolePhrase),
	SyllableVowel:        syllableVowel,

	WordIndex:          indexVia(annotation.RolePhone, annotation.RoleWord),
	WordPOS:            wordPOS,
	WordSizeInSyllable: sizeIn(annotation.RoleWord, annotation.RoleSyllable),
	WordInPhraseFW:     positionFW(annotation.RoleWord, annotation.RolePhrase),
	WordInPhraseBW:     positionBW(annotation.RoleWord, annotation.RolePhrase),

	PhraseIndex:          indexVia(annotation.RolePhone, annotation.RolePhrase),
	PhraseSizeInSyllable: sizeIn(annotation.RolePhrase, annotation.RoleSyllable),
	PhraseSizeInWord:     sizeIn(annotation.RolePhrase, annotation.RoleWord),
	PhraseInUtteranceFW:  phraseInUtteranceFW,
	PhraseInUtteranceBW:  phraseInUtteranceBW,

	UtteranceSizeInSyllable: tierSize(annotation.RoleSyllable),
	UtteranceSizeInWord:     tierSize(annotation.RoleWord),
	UtteranceSizeInPhrase:   tierSize(annotation.RolePhrase),
}

// Lookup returns the function registered under name.
func Lookup(name Name) (Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered features in lexical order.
func Names() []Name {
	out := make([]Name, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Params tunes label normalisation.
type Params struct {
	// NssReplacements rewrites characters reserved by the label grammar
	// in non-speech-sound labels, as old/new pairs.
	NssReplacements []string
}

// DefaultParams replaces "#" and "%", both delimiters of the label grammar.
func DefaultParams() Params {
	return Params{NssReplacements: []string{"#", "dash", "%", "percent"}}
}

// Extractor computes features over a single utterance. It keeps no state
// between calls besides the bound utterance and configuration.
type Extractor struct {
	utt   annotation.Utterance
	roles annotation.Roles
	nss   *strings.Replacer
}

func NewExtractor(utt annotation.Utterance, roles annotation.Roles, p Params) *Extractor {
	return &Extractor{utt: utt, roles: roles, nss: strings.NewReplacer(p.NssReplacements...)}
}

func (e *Extractor) Utterance() annotation.Utterance { return e.utt }

// Compute evaluates the feature name at index.
func (e *Extractor) Compute(name Name, index int) (Value, error) {
	f, ok := registry[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	v, err := f(e, index)
	if err != nil {
		return Value{}, fmt.Errorf("%s(%d): %w", name, index, err)
	}
	return v, nil
}

func (e *Extractor) tier(r annotation.Role) (string, error) {
	return e.roles.Tier(r)
}

func (e *Extractor) count(r annotation.Role) (int, error) {
	t, err := e.tier(r)
	if err != nil {
		return 0, err
	}
	return e.utt.Count(t)
}

func (e *Extractor) item(r annotation.Role, index int) (annotation.Item, error) {
	t, err := e.tier(r)
	if err != nil {
		return annotation.Item{}, err
	}
	return e.utt.Item(t, index)
}

func (e *Extractor) related(from, to annotation.Role, index int) ([]int, error) {
	f, err := e.tier(from)
	if err != nil {
		return nil, err
	}
	t, err := e.tier(to)
	if err != nil {
		return nil, err
	}
	return e.utt.Related(f, t, index)
}
