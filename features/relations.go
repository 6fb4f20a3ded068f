package features

import (
	"fmt"

	"github.com/maastricht-university/labelgen/annotation"
)

// indexVia maps an item of a finer tier to the first related item of a
// coarser one.
func indexVia(from, to annotation.Role) Func {
	return func(e *Extractor, index int) (Value, error) {
		rel, err := e.related(from, to, index)
		if err != nil || len(rel) == 0 {
			return Value{}, err
		}
		return IntValue(rel[0]), nil
	}
}

// container returns the members of the container of index, all on the
// fine tier. Both relation directions are queried.
func (e *Extractor) container(fine, coarse annotation.Role, index int) ([]int, bool, error) {
	up, err := e.related(fine, coarse, index)
	if err != nil || len(up) == 0 {
		return nil, false, err
	}
	members, err := e.related(coarse, fine, up[0])
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, fmt.Errorf("%w: %s %d has no %s members", ErrInconsistent, coarse, up[0], fine)
	}
	return members, true, nil
}

func positionFW(fine, coarse annotation.Role) Func {
	return func(e *Extractor, index int) (Value, error) {
		members, ok, err := e.container(fine, coarse, index)
		if !ok {
			return Value{}, err
		}
		return IntValue(index - members[0] + 1), nil
	}
}

func positionBW(fine, coarse annotation.Role) Func {
	return func(e *Extractor, index int) (Value, error) {
		members, ok, err := e.container(fine, coarse, index)
		if !ok {
			return Value{}, err
		}
		return IntValue(members[len(members)-1] - index + 1), nil
	}
}

// sizeIn counts the members of a container on the given member tier.
func sizeIn(container, member annotation.Role) Func {
	return func(e *Extractor, index int) (Value, error) {
		rel, err := e.related(container, member, index)
		if err != nil {
			return Value{}, err
		}
		return IntValue(len(rel)), nil
	}
}

func tierSize(r annotation.Role) Func {
	return func(e *Extractor, _ int) (Value, error) {
		n, err := e.count(r)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	}
}

func itemLabel(r annotation.Role) Func {
	return func(e *Extractor, index int) (Value, error) {
		it, err := e.item(r, index)
		if err != nil {
			return Value{}, err
		}
		return StringValue(it.Label), nil
	}
}
