package annotationtest

import "github.com/maastricht-university/labelgen/annotation"

// SegmentDuration is the length of every segment of the fixtures, in seconds.
// It is exact in binary so timings convert without rounding.
const SegmentDuration = 0.125

// Sentence is "le chat dormait" framed by two non-speech sounds:
//
//	segments  #  l  @  S  a  d  O  R  m  E  %
//	phones       0  1  2  3  4  5  6  7  8
//	syllables    [0  ] [1  ] [2     ] [3  ]
//	words        [0  ] [1  ] [2            ]
//	phrases      [0        ] [1            ]
//
// Syllables 1 and 2 are stressed, syllable 2 is prominent.
func Sentence(id int) *annotation.Document {
	b := New(id)
	phones := []string{"l", "@", "S", "a", "d", "O", "R", "m", "E"}
	sylPhones := [][]int{{0, 1}, {2, 3}, {4, 5, 6}, {7, 8}}
	syls := []annotation.Item{
		{Label: "l@", Nucleus: "@"},
		{Label: "Sa", Nucleus: "a", Stressed: true},
		{Label: "dOR", Nucleus: "O", Stressed: true, Prominent: true},
		{Label: "mE", Nucleus: "E"},
	}
	sylWord := []int{0, 1, 2, 2}
	words := []string{"le", "chat", "dormait"}
	pos := []string{"DET", "NOUN", "VERB"}
	wordPhrase := []int{0, 0, 1}

	nss := []string{"#", "%"}
	seg := 0
	addSeg := func() int {
		i := b.Segment(float64(seg)*SegmentDuration, float64(seg+1)*SegmentDuration)
		seg++
		return i
	}

	b.Link(annotation.RoleSegment, annotation.RoleNss, addSeg(), b.Add(annotation.RoleNss, annotation.Item{Label: nss[0]}))
	for _, label := range phones {
		b.Link(annotation.RoleSegment, annotation.RolePhone, addSeg(), b.Add(annotation.RolePhone, annotation.Item{Label: label}))
	}
	b.Link(annotation.RoleSegment, annotation.RoleNss, addSeg(), b.Add(annotation.RoleNss, annotation.Item{Label: nss[1]}))

	for w, label := range words {
		b.Add(annotation.RoleWord, annotation.Item{Label: label})
		b.Add(annotation.RolePOS, annotation.Item{Label: pos[w]})
		b.Link(annotation.RoleWord, annotation.RolePOS, w, w)
		b.Link(annotation.RoleWord, annotation.RolePhrase, w, wordPhrase[w])
	}
	b.Add(annotation.RolePhrase, annotation.Item{Label: "NP"})
	b.Add(annotation.RolePhrase, annotation.Item{Label: "VP"})

	for s, it := range syls {
		b.Add(annotation.RoleSyllable, it)
		w := sylWord[s]
		b.Link(annotation.RoleSyllable, annotation.RoleWord, s, w)
		b.Link(annotation.RoleSyllable, annotation.RolePhrase, s, wordPhrase[w])
		for _, p := range sylPhones[s] {
			b.Link(annotation.RolePhone, annotation.RoleSyllable, p, s)
			b.Link(annotation.RolePhone, annotation.RoleWord, p, w)
			b.Link(annotation.RolePhone, annotation.RolePhrase, p, wordPhrase[w])
		}
	}
	return b.Doc()
}

// Minimal is three segments: a non-speech sound, one phone forming a
// stressed syllable that is alone in its word and phrase, and another
// non-speech sound.
func Minimal(id int) *annotation.Document {
	b := New(id)
	for i := 0; i < 3; i++ {
		b.Segment(float64(i)*SegmentDuration, float64(i+1)*SegmentDuration)
	}
	b.Add(annotation.RoleNss, annotation.Item{Label: "#"})
	b.Add(annotation.RoleNss, annotation.Item{Label: "#"})
	b.Add(annotation.RolePhone, annotation.Item{Label: "a"})
	b.Add(annotation.RoleSyllable, annotation.Item{Label: "a", Nucleus: "a", Stressed: true})
	b.Add(annotation.RoleWord, annotation.Item{Label: "a"})
	b.Add(annotation.RolePOS, annotation.Item{Label: "PREP"})
	b.Add(annotation.RolePhrase, annotation.Item{Label: "PP"})

	b.Link(annotation.RoleSegment, annotation.RoleNss, 0, 0).
		Link(annotation.RoleSegment, annotation.RoleNss, 2, 1).
		Link(annotation.RoleSegment, annotation.RolePhone, 1, 0).
		Link(annotation.RolePhone, annotation.RoleSyllable, 0, 0).
		Link(annotation.RolePhone, annotation.RoleWord, 0, 0).
		Link(annotation.RolePhone, annotation.RolePhrase, 0, 0).
		Link(annotation.RoleSyllable, annotation.RoleWord, 0, 0).
		Link(annotation.RoleSyllable, annotation.RolePhrase, 0, 0).
		Link(annotation.RoleWord, annotation.RolePhrase, 0, 0).
		Link(annotation.RoleWord, annotation.RolePOS, 0, 0)
	return b.Doc()
}
