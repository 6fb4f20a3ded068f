package labels

import (
	"errors"
	"fmt"

	"github.com/maastricht-university/labelgen/annotation"
	"github.com/maastricht-university/labelgen/features"
)

// ErrInconsistent reports a phone that lacks a syllable, word or phrase.
var ErrInconsistent = errors.New("labels: inconsistent annotation")

const (
	// PhoneWindow is the number of phones on each side of the current one.
	PhoneWindow = 2

	reservedSyllableSlots = 8
	reservedWordSlots     = 4
)

// Assembler builds the context feature vectors of one utterance.
type Assembler struct {
	fx *features.Extractor

	segments  int
	syllables int
	words     int
	phrases   int
}

func NewAssembler(utt annotation.Utterance, roles annotation.Roles, p features.Params) (*Assembler, error) {
	a := &Assembler{fx: features.NewExtractor(utt, roles, p)}
	for _, c := range []struct {
		role annotation.Role
		n    *int
	}{
		{annotation.RoleSegment, &a.segments},
		{annotation.RoleSyllable, &a.syllables},
		{annotation.RoleWord, &a.words},
		{annotation.RolePhrase, &a.phrases},
	} {
		tier, err := roles.Tier(c.role)
		if err != nil {
			return nil, err
		}
		if *c.n, err = utt.Count(tier); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Segments is the number of lines the utterance produces.
func (a *Assembler) Segments() int { return a.segments }

// vector accumulates feature values, keeping the first error.
type vector struct {
	fx   *features.Extractor
	vals []features.Value
	err  error
}

func (v *vector) add(name features.Name, index int) {
	if v.err != nil {
		return
	}
	val, err := v.fx.Compute(name, index)
	if err != nil {
		v.err = err
		return
	}
	v.vals = append(v.vals, val)
}

func (v *vector) unknown(n int) {
	for i := 0; i < n; i++ {
		v.vals = append(v.vals, features.Value{})
	}
}

func (v *vector) index(name features.Name, index int) (int, bool) {
	if v.err != nil {
		return 0, false
	}
	val, err := v.fx.Compute(name, index)
	if err != nil {
		v.err = err
		return 0, false
	}
	return val.Index()
}

// Vector returns the features of segment seg: the minimal 12-slot form for a
// non-speech segment, the full 55-slot form otherwise.
func (a *Assembler) Vector(seg int) ([]features.Value, error) {
	if seg < 0 || seg >= a.segments {
		return nil, fmt.Errorf("segment %d: %w", seg, annotation.ErrIndexOutOfRange)
	}
	v := &vector{fx: a.fx, vals: make([]features.Value, 0, FullSize)}

	v.add(features.StartSegment, seg)
	v.add(features.EndSegment, seg)

	for off := -PhoneWindow; off <= PhoneWindow; off++ {
		if s := seg + off; s >= 0 && s < a.segments {
			a.segmentLabel(v, s)
		} else {
			v.unknown(1)
		}
	}

	phone, isPhone := v.index(features.PhoneIndex, seg)
	if isPhone {
		v.add(features.PhoneInSyllableFW, phone)
		v.add(features.PhoneInSyllableBW, phone)
		a.syllable(v, phone)
		a.word(v, phone)
		a.phrase(v, phone)
	} else {
		v.unknown(2)
	}

	v.add(features.UtteranceSizeInSyllable, seg)
	v.add(features.UtteranceSizeInWord, seg)
	v.add(features.UtteranceSizeInPhrase, seg)

	if v.err != nil {
		return nil, fmt.Errorf("segment %d: %w", seg, v.err)
	}
	return v.vals, nil
}

// segmentLabel emits the phone label of s, or its non-speech label when s
// has no phone.
func (a *Assembler) segmentLabel(v *vector, s int) {
	if phone, ok := v.index(features.PhoneIndex, s); ok {
		v.add(features.PhoneLabel, phone)
		return
	}
	if nss, ok := v.index(features.NssIndex, s); ok {
		v.add(features.NssLabel, nss)
		return
	}
	v.unknown(1)
}

func (a *Assembler) container(v *vector, name features.Name, role annotation.Role, phone int) (int, bool) {
	i, ok := v.index(name, phone)
	if !ok && v.err == nil {
		v.err = fmt.Errorf("%w: phone %d has no %s", ErrInconsistent, phone, role)
	}
	return i, ok
}

func (a *Assembler) syllable(v *vector, phone int) {
	syl, ok := a.container(v, features.SyllableIndex, annotation.RoleSyllable, phone)
	if !ok {
		return
	}
	neighbour := func(i int) {
		v.add(features.SyllableIsStressed, i)
		v.add(features.SyllableIsProminent, i)
		v.add(features.SyllableSizeInPhones, i)
	}

	if syl > 0 {
		neighbour(syl - 1)
	} else {
		v.unknown(3)
	}

	neighbour(syl)
	v.add(features.SyllableInWordFW, syl)
	v.add(features.SyllableInWordBW, syl)
	v.add(features.SyllableInPhraseFW, syl)
	v.add(features.SyllableInPhraseBW, syl)
	v.unknown(reservedSyllableSlots)
	v.add(features.SyllableVowel, syl)

	if syl < a.syllables-1 {
		neighbour(syl + 1)
	} else {
		v.unknown(3)
	}
}

func (a *Assembler) word(v *vector, phone int) {
	word, ok := a.container(v, features.WordIndex, annotation.RoleWord, phone)
	if !ok {
		return
	}
	neighbour := func(i int) {
		v.add(features.WordPOS, i)
		v.add(features.WordSizeInSyllable, i)
	}

	if word > 0 {
		neighbour(word - 1)
	} else {
		v.unknown(2)
	}

	neighbour(word)
	v.add(features.WordInPhraseFW, word)
	v.add(features.WordInPhraseBW, word)
	v.unknown(reservedWordSlots)

	if word < a.words-1 {
		neighbour(word + 1)
	} else {
		v.unknown(2)
	}
}

func (a *Assembler) phrase(v *vector, phone int) {
	phrase, ok := a.container(v, features.PhraseIndex, annotation.RolePhrase, phone)
	if !ok {
		return
	}
	neighbour := func(i int) {
		v.add(features.PhraseSizeInSyllable, i)
		v.add(features.PhraseSizeInWord, i)
	}

	if phrase > 0 {
		neighbour(phrase - 1)
	} else {
		v.unknown(2)
	}

	neighbour(phrase)
	v.add(features.PhraseInUtteranceFW, phrase)
	v.add(features.PhraseInUtteranceBW, phrase)
	v.unknown(1)

	if phrase < a.phrases-1 {
		neighbour(phrase + 1)
	} else {
		v.unknown(2)
	}
}
