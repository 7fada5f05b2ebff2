package selector

import (
	"sort"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// Category is the bucket a candidate package falls into
type Category int

const (
	Kernel Category = iota
	KernelDbg
	Base
	BaseDbg
	Lib32
	Lib32Dbg
	Src
	Tests
	// Ignored holds kernel variants other than the generic kernel
	Ignored
)

// Categories lists every category a package can be installed from, in
// install order
var Categories = []Category{Kernel, Base, KernelDbg, BaseDbg, Lib32, Lib32Dbg, Src, Tests}

// String returns the category name
func (c Category) String() string {
	switch c {
	case Kernel:
		return "kernel"
	case KernelDbg:
		return "kernel-dbg"
	case Base:
		return "base"
	case BaseDbg:
		return "base-dbg"
	case Lib32:
		return "lib32"
	case Lib32Dbg:
		return "lib32-dbg"
	case Src:
		return "src"
	case Tests:
		return "tests"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

const (
	genericKernel    = "FreeBSD-kernel-generic"
	genericKernelDbg = "FreeBSD-kernel-generic-dbg"
)

// kernelMan shares the kernel prefix but ships man pages, so it is Base.
const kernelMan = "FreeBSD-kernel-man"

type rule struct {
	match    func(name string) bool
	classify func(name string) Category
}

func always(c Category) func(string) Category {
	return func(string) Category { return c }
}

func contains(sub string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, sub) }
}

// rules is evaluated top to bottom and the first match wins. The order
// matters: src and tests packages may carry -dbg or -lib32 in their names,
// and every -dbg-lib32 package also contains both -dbg and -lib32.
var rules = []rule{
	{match: func(n string) bool { return strings.HasPrefix(n, "FreeBSD-src") }, classify: always(Src)},
	{match: func(n string) bool { return strings.HasPrefix(n, "FreeBSD-tests") }, classify: always(Tests)},
	{
		match: func(n string) bool { return strings.HasPrefix(n, "FreeBSD-kernel-") && n != kernelMan },
		classify: func(n string) Category {
			switch n {
			case genericKernel:
				return Kernel
			case genericKernelDbg:
				return KernelDbg
			default:
				return Ignored
			}
		},
	},
	{match: contains("-dbg-lib32"), classify: always(Lib32Dbg)},
	{match: contains("-lib32"), classify: always(Lib32)},
	{match: contains("-dbg"), classify: always(BaseDbg)},
}

// Classify returns the category of a single package name. Every name gets
// exactly one category; names matching no rule are Base.
func Classify(name string) Category {
	for _, r := range rules {
		if r.match(name) {
			return r.classify(name)
		}
	}
	return Base
}

// Partition is the candidate list split by category
type Partition struct {
	buckets map[Category][]string
}

// NewPartition classifies every candidate. Duplicate names are kept once.
func NewPartition(candidates []string) Partition {
	p := Partition{buckets: make(map[Category][]string)}
	seen := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		c := Classify(name)
		p.buckets[c] = append(p.buckets[c], name)
	}
	for c := range p.buckets {
		sort.Strings(p.buckets[c])
	}
	return p
}

// Get returns the packages in category c, sorted by name
func (p Partition) Get(c Category) []string {
	return p.buckets[c]
}

// Count returns the number of packages in category c
func (p Partition) Count(c Category) int {
	return len(p.buckets[c])
}

// All returns every classified name including ignored ones
func (p Partition) All() []string {
	var out []string
	for _, c := range append(append([]Category(nil), Categories...), Ignored) {
		out = append(out, p.buckets[c]...)
	}
	return out
}

// Validate checks the repository layout: exactly one generic kernel and at
// least one package in every other installable category. A violation means
// the repository no longer looks the way this tool expects.
func (p Partition) Validate() error {
	if n := p.Count(Kernel); n != 1 {
		return errors.Newf(errors.ErrInventoryMismatch,
			"expected exactly one %s package, found %d", genericKernel, n).
			WithDetail("category", Kernel.String())
	}
	for _, c := range Categories {
		if c == Kernel {
			continue
		}
		if p.Count(c) == 0 {
			return errors.Newf(errors.ErrInventoryMismatch,
				"repository has no %s packages", c).
				WithDetail("category", c.String())
		}
	}
	return nil
}
