package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Link relates item From of the source tier to item To of the target tier.
type Link [2]int

// RelationDoc is the serialized form of a relation between two tiers.
// Links are kept in declaration order.
type RelationDoc struct {
	From  string  `yaml:"from" json:"from"`
	To    string  `yaml:"to" json:"to"`
	Links [][]int `yaml:"links" json:"links"`
}

// Document is an in-memory Utterance.
type Document struct {
	UttID     int               `yaml:"id" json:"id"`
	Tiers     map[string][]Item `yaml:"tiers" json:"tiers"`
	Relations []RelationDoc     `yaml:"relations,omitempty" json:"relations,omitempty"`

	once sync.Once
	rels map[relKey]map[int][]int
}

type relKey struct{ from, to string }

func (d *Document) ID() int { return d.UttID }

func (d *Document) Count(tier string) (int, error) {
	items, ok := d.Tiers[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTierNotFound, tier)
	}
	return len(items), nil
}

func (d *Document) Item(tier string, index int) (Item, error) {
	items, ok := d.Tiers[tier]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrTierNotFound, tier)
	}
	if index < 0 || index >= len(items) {
		return Item{}, fmt.Errorf("%w: %q[%d] (len %d)", ErrIndexOutOfRange, tier, index, len(items))
	}
	return items[index], nil
}

// Related answers in either direction: a relation declared from→to also
// answers to→from queries. Indices come back in tier order, whatever the
// order of the links.
func (d *Document) Related(from, to string, index int) ([]int, error) {
	n, err := d.Count(from)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: %q[%d] (len %d)", ErrIndexOutOfRange, from, index, n)
	}
	d.once.Do(d.index)
	m, ok := d.rels[relKey{from, to}]
	if !ok {
		return nil, fmt.Errorf("%w: %q -> %q", ErrRelationNotFound, from, to)
	}
	return m[index], nil
}

func (d *Document) index() {
	d.rels = make(map[relKey]map[int][]int)
	declared := make(map[relKey]bool)
	for _, r := range d.Relations {
		declared[relKey{r.From, r.To}] = true
	}
	for _, r := range d.Relations {
		fw := d.relation(relKey{r.From, r.To})
		// an explicit declaration of the inverse wins over the derived one
		var bw map[int][]int
		if !declared[relKey{r.To, r.From}] {
			bw = d.relation(relKey{r.To, r.From})
		}
		for _, l := range r.Links {
			if len(l) != 2 {
				continue
			}
			fw[l[0]] = append(fw[l[0]], l[1])
			if bw != nil {
				bw[l[1]] = append(bw[l[1]], l[0])
			}
		}
	}
	for _, m := range d.rels {
		for _, idx := range m {
			sort.Ints(idx)
		}
	}
}

func (d *Document) relation(k relKey) map[int][]int {
	m, ok := d.rels[k]
	if !ok {
		m = make(map[int][]int)
		d.rels[k] = m
	}
	return m
}

// Validate checks that every relation links existing tiers and in-range items.
func (d *Document) Validate() error {
	for _, r := range d.Relations {
		nf, err := d.Count(r.From)
		if err != nil {
			return fmt.Errorf("utterance %d: relation %q -> %q: %w", d.UttID, r.From, r.To, err)
		}
		nt, err := d.Count(r.To)
		if err != nil {
			return fmt.Errorf("utterance %d: relation %q -> %q: %w", d.UttID, r.From, r.To, err)
		}
		for _, l := range r.Links {
			if len(l) != 2 {
				return fmt.Errorf("utterance %d: relation %q -> %q: link %v is not a pair", d.UttID, r.From, r.To, l)
			}
			if l[0] < 0 || l[0] >= nf || l[1] < 0 || l[1] >= nt {
				return fmt.Errorf("utterance %d: relation %q -> %q: link %v: %w", d.UttID, r.From, r.To, l, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// Relate appends a link to the relation from→to, declaring it if needed.
func (d *Document) Relate(from, to string, links ...Link) {
	for i := range d.Relations {
		if d.Relations[i].From == from && d.Relations[i].To == to {
			for _, l := range links {
				d.Relations[i].Links = append(d.Relations[i].Links, []int{l[0], l[1]})
			}
			return
		}
	}
	r := RelationDoc{From: from, To: to}
	for _, l := range links {
		r.Links = append(r.Links, []int{l[0], l[1]})
	}
	d.Relations = append(d.Relations, r)
}

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Decode reads and validates a document.
func Decode(r io.Reader, f Format) (*Document, error) {
	var d Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&d)
	default:
		err = yaml.NewDecoder(r).Decode(&d)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s document: %w", f, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode writes d in the given format.
func Encode(w io.Writer, d *Document, f Format) error {
	if f == FormatJSON {
		return json.NewEncoder(w).Encode(d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func marshalYAML(d *Document) (string, error) {
	var b bytes.Buffer
	if err := Encode(&b, d, FormatYAML); err != nil {
		return "", err
	}
	return b.String(), nil
}
