package dichecker

import (
	"cmp"
	"slices"
)

// Group holds the failures of one kind reported for a (file, pass) pair.
type Group[T Failure] struct {
	File     string
	Pass     string
	Failures []T
}

type fileGroups[T Failure] struct {
	file   string
	passes []*Group[T]
	byPass map[string]*Group[T]
}

// Index maps file -> pass -> failures, remembering first-seen order at both levels.
type Index[T Failure] struct {
	files  []*fileGroups[T]
	byFile map[string]*fileGroups[T]
	count  int
}

// NewIndex returns an empty index.
func NewIndex[T Failure]() *Index[T] {
	return &Index[T]{byFile: map[string]*fileGroups[T]{}}
}

// Ensure returns the group for (file, pass), creating an empty one on first sight.
func (idx *Index[T]) Ensure(file, pass string) *Group[T] {
	perFile, ok := idx.byFile[file]
	if !ok {
		perFile = &fileGroups[T]{file: file, byPass: map[string]*Group[T]{}}
		idx.byFile[file] = perFile
		idx.files = append(idx.files, perFile)
	}

	group, ok := perFile.byPass[pass]
	if !ok {
		group = &Group[T]{File: file, Pass: pass}
		perFile.byPass[pass] = group
		perFile.passes = append(perFile.passes, group)
	}

	return group
}

// Append records a failure for (file, pass).
func (idx *Index[T]) Append(file, pass string, failure T) {
	group := idx.Ensure(file, pass)
	group.Failures = append(group.Failures, failure)
	idx.count++
}

// Lookup returns the group for (file, pass) without creating it.
func (idx *Index[T]) Lookup(file, pass string) (*Group[T], bool) {
	perFile, ok := idx.byFile[file]
	if !ok {
		return nil, false
	}

	group, ok := perFile.byPass[pass]

	return group, ok
}

// Groups lists every group, files then passes in first-seen order. Empty groups are included.
func (idx *Index[T]) Groups() []*Group[T] {
	var groups []*Group[T]

	for _, perFile := range idx.files {
		groups = append(groups, perFile.passes...)
	}

	return groups
}

// Files lists source files in first-seen order.
func (idx *Index[T]) Files() []string {
	files := make([]string, 0, len(idx.files))
	for _, perFile := range idx.files {
		files = append(files, perFile.file)
	}

	return files
}

// Len is the total number of failures across all groups.
func (idx *Index[T]) Len() int {
	return idx.count
}

// PassCount is one summary row.
type PassCount struct {
	Pass  string
	Count int
}

// Summary counts failures per pass.
type Summary struct {
	order  []string
	counts map[string]int
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{counts: map[string]int{}}
}

// Add counts one failure for pass.
func (s *Summary) Add(pass string) {
	if _, ok := s.counts[pass]; !ok {
		s.order = append(s.order, pass)
	}

	s.counts[pass]++
}

// Count returns the failures recorded for pass.
func (s *Summary) Count(pass string) int {
	return s.counts[pass]
}

// Total is the sum of all counts.
func (s *Summary) Total() int {
	total := 0
	for _, count := range s.counts {
		total += count
	}

	return total
}

// Passes lists passes with at least one failure, in first-seen order.
func (s *Summary) Passes() []string {
	return slices.Clone(s.order)
}

// Sorted returns the summary rows ordered by pass name.
func (s *Summary) Sorted() []PassCount {
	rows := make([]PassCount, 0, len(s.order))
	for _, pass := range s.order {
		rows = append(rows, PassCount{Pass: pass, Count: s.counts[pass]})
	}

	slices.SortFunc(rows, func(a, b PassCount) int {
		return cmp.Compare(a.Pass, b.Pass)
	})

	return rows
}

// Len is the number of distinct passes.
func (s *Summary) Len() int {
	return len(s.order)
}
