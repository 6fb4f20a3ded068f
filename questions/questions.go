// Package questions writes the HTS question file matching the label grammar
// of package labels: phone identity and category questions for the quinphone
// window, plus integer and boolean questions on other slots.
package questions

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	cfg "github.com/maastricht-university/labelgen/config"
	"github.com/maastricht-university/labelgen/labels"
)

// Position is one quinphone slot with the wildcard patterns around it.
type Position struct {
	Name, Left, Right string
}

var Quinphone = []Position{
	{"LL", "", "^*"},
	{"L", "*^", "-*"},
	{"C", "*-", "+*"},
	{"N", "*+", "=*"},
	{"NN", "*=", "@*"},
}

type Generator struct {
	w   *bufio.Writer
	err error

	categories []string
	phonemes   map[string][]string
	nss        []string
}

func NewGenerator(w io.Writer, a cfg.Alphabet, nssReplacements []string) *Generator {
	g := &Generator{w: bufio.NewWriter(w), phonemes: a.Phonemes}
	for c, syms := range a.Phonemes {
		if len(syms) > 0 {
			g.categories = append(g.categories, c)
		}
	}
	sort.Strings(g.categories)

	norm := strings.NewReplacer(nssReplacements...)
	for _, s := range a.Nss {
		g.nss = append(g.nss, norm.Replace(s))
	}
	return g
}

// WriteAll writes the full question set and flushes.
func (g *Generator) WriteAll() error {
	for _, p := range Quinphone {
		g.Phone(p)
	}
	g.printf("\n\n")
	g.Boolean("C-Syl_Stress", "*/B:", "-*")
	g.Seq("NB_SYLS_IN_UTT", 1, 50, "*/J:", "+*")
	g.Seq("NB_WORDS_IN_UTT", 1, 30, "*+", "-*")
	g.Seq("NB_PHRASES_IN_UTT", 1, 10, "*-", "/Z:*")
	return g.Flush()
}

func (g *Generator) Flush() error {
	if g.err != nil {
		return g.err
	}
	return g.w.Flush()
}

func (g *Generator) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

func (g *Generator) question(name string, values []string, left, right string) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = left + v + right
	}
	g.printf("QS \"%s\" {%s}\n", name, strings.Join(parts, ", "))
}

// Phone writes the category, identity, non-speech and unknown questions of
// one quinphone position.
func (g *Generator) Phone(p Position) {
	var all []string
	seen := map[string]bool{}
	for _, c := range g.categories {
		syms := g.phonemes[c]
		g.question(p.Name+"-"+c, syms, p.Left, p.Right)
		for _, s := range syms {
			if !seen[s] {
				seen[s] = true
				all = append(all, s)
			}
		}
	}
	if len(all) > 0 {
		g.question(p.Name+"-phones", all, p.Left, p.Right)
		for _, s := range all {
			g.question(p.Name+"-"+s, []string{s}, p.Left, p.Right)
		}
	}
	if len(g.nss) > 0 {
		g.question(p.Name+"-nss", g.nss, p.Left, p.Right)
		for _, s := range g.nss {
			g.question(p.Name+"-"+s, []string{s}, p.Left, p.Right)
		}
	}
	g.question(p.Name+"-"+labels.Unknown, []string{labels.Unknown}, p.Left, p.Right)
}

// Seq writes cumulative (<=n) and exact (==n) questions for n in [start, end].
func (g *Generator) Seq(name string, start, end int, left, right string) {
	var upTo []string
	for n := start; n <= end; n++ {
		upTo = append(upTo, fmt.Sprint(n))
		g.question(fmt.Sprintf("%s<=%d", name, n), upTo, left, right)
	}
	for n := start; n <= end; n++ {
		g.question(fmt.Sprintf("%s==%d", name, n), []string{fmt.Sprint(n)}, left, right)
	}
	g.question(name+"=="+labels.Unknown, []string{labels.Unknown}, left, right)
}

func (g *Generator) Boolean(name, left, right string) {
	g.question(name+"==0", []string{"0"}, left, right)
	g.question(name+"==1", []string{"1"}, left, right)
	g.question(name+"=="+labels.Unknown, []string{labels.Unknown}, left, right)
}
