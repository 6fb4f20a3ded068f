// Package annotationtest builds small in-memory utterances for tests.
package annotationtest

import "github.com/maastricht-university/labelgen/annotation"

// Roles maps every role to a tier of the same name.
func Roles() annotation.Roles {
	r := annotation.Roles{}
	for _, role := range annotation.AllRoles {
		r[role] = string(role)
	}
	return r
}

// Builder appends items and links to a Document whose tiers are named
// after their roles.
type Builder struct {
	doc *annotation.Document
}

func New(id int) *Builder {
	d := &annotation.Document{UttID: id, Tiers: map[string][]annotation.Item{}}
	for _, role := range annotation.AllRoles {
		d.Tiers[string(role)] = nil
	}
	return &Builder{doc: d}
}

// Add appends it to the tier of role and returns its index.
func (b *Builder) Add(role annotation.Role, it annotation.Item) int {
	t := string(role)
	b.doc.Tiers[t] = append(b.doc.Tiers[t], it)
	return len(b.doc.Tiers[t]) - 1
}

func (b *Builder) Segment(start, end float64) int {
	return b.Add(annotation.RoleSegment, annotation.Item{Start: start, End: end})
}

// Link relates item i of from to item j of to.
func (b *Builder) Link(from, to annotation.Role, i, j int) *Builder {
	b.doc.Relate(string(from), string(to), annotation.Link{i, j})
	return b
}

// Declare makes sure the relation from→to exists, even without links.
func (b *Builder) Declare(from, to annotation.Role) *Builder {
	b.doc.Relate(string(from), string(to))
	return b
}

func (b *Builder) Doc() *annotation.Document { return b.doc }
