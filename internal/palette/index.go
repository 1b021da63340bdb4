package palette

// Index is the set of theme names already installed under Colors.
// Membership is an exact string match.
type Index struct {
	names map[string]struct{}
}

// NewIndex builds an index from installed theme names.
func NewIndex(names []string) *Index {
	idx := &Index{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		idx.Add(n)
	}
	return idx
}

// Contains reports whether name is installed.
func (i *Index) Contains(name string) bool {
	_, ok := i.names[name]
	return ok
}

// Add records name as installed.
func (i *Index) Add(name string) {
	i.names[name] = struct{}{}
}

// Len returns the number of installed names.
func (i *Index) Len() int {
	return len(i.names)
}
