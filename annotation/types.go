// Package annotation models a multi-tier utterance annotation: named ordered
// tiers of items and order-preserving relations between tiers.
//
// The label engine only depends on the Utterance and Corpus interfaces; the
// concrete providers in this package (directory, SQLite) and in clients (HTTP)
// are interchangeable.
package annotation

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrTierNotFound     = errors.New("annotation: tier not found")
	ErrRelationNotFound = errors.New("annotation: relation not found")
	ErrIndexOutOfRange  = errors.New("annotation: index out of range")
	ErrMissingRole      = errors.New("annotation: tier role not mapped")
	ErrUtteranceMissing = errors.New("annotation: utterance not found")
)

// Role is the abstract name of a tier, independent of any corpus.
type Role string

const (
	RoleSegment  Role = "segment"
	RolePhone    Role = "phone"
	RoleNss      Role = "nss"
	RoleSyllable Role = "syllable"
	RoleWord     Role = "word"
	RolePOS      Role = "pos"
	RolePhrase   Role = "phrase"
	RoleSignal   Role = "signal"
)

// AllRoles lists every role a configuration must map.
var AllRoles = []Role{RoleSegment, RolePhone, RoleNss, RoleSyllable, RoleWord, RolePOS, RolePhrase, RoleSignal}

// Roles maps abstract roles to the tier names of a corpus.
type Roles map[Role]string

// Tier returns the concrete tier name for r.
func (r Roles) Tier(role Role) (string, error) {
	name, ok := r[role]
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRole, role)
	}
	return name, nil
}

// Item is one annotated unit. Which fields are meaningful depends on the tier:
// segments carry Start/End, syllables Stressed/Prominent/Nucleus, signals File.
type Item struct {
	Label     string  `yaml:"label,omitempty" json:"label,omitempty"`
	Start     float64 `yaml:"start,omitempty" json:"start,omitempty"`
	End       float64 `yaml:"end,omitempty" json:"end,omitempty"`
	Stressed  bool    `yaml:"stressed,omitempty" json:"stressed,omitempty"`
	Prominent bool    `yaml:"prominent,omitempty" json:"prominent,omitempty"`
	Nucleus   string  `yaml:"nucleus,omitempty" json:"nucleus,omitempty"`
	File      string  `yaml:"file,omitempty" json:"file,omitempty"`
}

// Utterance is a read-only view over one annotated utterance.
// Related returns an empty slice when index has no association.
type Utterance interface {
	ID() int
	Count(tier string) (int, error)
	Item(tier string, index int) (Item, error)
	Related(from, to string, index int) ([]int, error)
}

// Corpus gives access to the utterances of a corpus. Implementations are
// safe for concurrent use.
type Corpus interface {
	IDs(ctx context.Context) ([]int, error)
	Utterance(ctx context.Context, id int) (Utterance, error)
	Close() error
}
