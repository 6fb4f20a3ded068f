package features

import "github.com/maastricht-university/labelgen/annotation"

// TimeUnit converts seconds to HTK time units of 100ns.
const TimeUnit = 10000000

func startSegment(e *Extractor, index int) (Value, error) {
	seg, err := e.item(annotation.RoleSegment, index)
	if err != nil {
		return Value{}, err
	}
	return IntValue(int(seg.Start * TimeUnit)), nil
}

func endSegment(e *Extractor, index int) (Value, error) {
	seg, err := e.item(annotation.RoleSegment, index)
	if err != nil {
		return Value{}, err
	}
	return IntValue(int(seg.End * TimeUnit)), nil
}

func nssLabel(e *Extractor, index int) (Value, error) {
	it, err := e.item(annotation.RoleNss, index)
	if err != nil {
		return Value{}, err
	}
	return StringValue(e.nss.Replace(it.Label)), nil
}

func syllableIsStressed(e *Extractor, index int) (Value, error) {
	syl, err := e.item(annotation.RoleSyllable, index)
	if err != nil {
		return Value{}, err
	}
	return BoolValue(syl.Stressed), nil
}

func syllableIsProminent(e *Extractor, index int) (Value, error) {
	syl, err := e.item(annotation.RoleSyllable, index)
	if err != nil {
		return Value{}, err
	}
	return BoolValue(syl.Prominent), nil
}

func syllableVowel(e *Extractor, index int) (Value, error) {
	syl, err := e.item(annotation.RoleSyllable, index)
	if err != nil || syl.Nucleus == "" {
		return Value{}, err
	}
	return StringValue(syl.Nucleus), nil
}

func wordPOS(e *Extractor, index int) (Value, error) {
	rel, err := e.related(annotation.RoleWord, annotation.RolePOS, index)
	if err != nil || len(rel) == 0 {
		return Value{}, err
	}
	pos, err := e.item(annotation.RolePOS, rel[0])
	if err != nil {
		return Value{}, err
	}
	return StringValue(pos.Label), nil
}

func phraseInUtteranceFW(_ *Extractor, index int) (Value, error) {
	return IntValue(index + 1), nil
}

// phraseInUtteranceBW is count-index, without the +1 the other backward
// positions carry. Trained models depend on it.
func phraseInUtteranceBW(e *Extractor, index int) (Value, error) {
	n, err := e.count(annotation.RolePhrase)
	if err != nil {
		return Value{}, err
	}
	return IntValue(n - index), nil
}
