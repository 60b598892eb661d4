package resource

// Seq is an insertion-ordered, named collection of Configs and
// ProfileSets produced by digesting one configuration document (or one
// extension namespace). Duplicate Names across different Seqs are legal;
// insertion order is the order resources are applied.
type Seq struct {
	Name    string
	entries []any // *Config or *ProfileSet
}

// NewSeq returns an empty Seq named name (conventionally the digested
// document's base URI).
func NewSeq(name string) *Seq {
	return &Seq{Name: name}
}

// AddConfig appends a Config to the sequence.
func (s *Seq) AddConfig(c *Config) {
	s.entries = append(s.entries, c)
}

// AddProfileSet appends a ProfileSet to the sequence.
func (s *Seq) AddProfileSet(p *ProfileSet) {
	s.entries = append(s.entries, p)
}

// Append transfers every entry of other onto the end of s, in order. It
// is how an extension namespace's nested sequence, and an imported file's
// sequence, are folded into the outer sequence.
func (s *Seq) Append(other *Seq) {
	s.entries = append(s.entries, other.entries...)
}

// Configs returns every Config in the sequence, in insertion order.
func (s *Seq) Configs() []*Config {
	var out []*Config
	for _, e := range s.entries {
		if c, ok := e.(*Config); ok {
			out = append(out, c)
		}
	}
	return out
}

// ProfileSets returns every ProfileSet in the sequence, in insertion
// order.
func (s *Seq) ProfileSets() []*ProfileSet {
	var out []*ProfileSet
	for _, e := range s.entries {
		if p, ok := e.(*ProfileSet); ok {
			out = append(out, p)
		}
	}
	return out
}

// Len reports the total number of entries (Configs and ProfileSets
// combined).
func (s *Seq) Len() int {
	return len(s.entries)
}
