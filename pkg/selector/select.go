package selector

import (
	"github.com/arthur-debert/pkgbasify/pkg/inventory"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
)

// gates maps each optional category to the subsystem that must be present
var gates = map[Category]inventory.Subsystem{
	KernelDbg: inventory.KernelDebug,
	BaseDbg:   inventory.BaseDebug,
	Lib32:     inventory.Lib32,
	Lib32Dbg:  inventory.Lib32Debug,
	Src:       inventory.Src,
	Tests:     inventory.Tests,
}

// Included reports whether category c is part of the install set for inv
func Included(c Category, inv inventory.Inventory) bool {
	switch c {
	case Kernel, Base:
		return true
	case Ignored:
		return false
	case Lib32Dbg:
		// lib32 debug symbols are meaningless without lib32 itself
		return inv.Has(inventory.Lib32) && inv.Has(inventory.Lib32Debug)
	}
	s, ok := gates[c]
	return ok && inv.Has(s)
}

// Select composes the install set: the kernel, all of base, then every
// optional category whose subsystem is present, in Categories order.
func Select(p Partition, inv inventory.Inventory) []string {
	logger := logging.GetLogger("selector")

	var selected []string
	for _, c := range Categories {
		if !Included(c, inv) {
			continue
		}
		selected = append(selected, p.Get(c)...)
		logger.Debug().
			Str("category", c.String()).
			Int("packages", p.Count(c)).
			Msg("Including category")
	}
	return selected
}

// Resolve partitions, validates and selects in one step
func Resolve(candidates []string, inv inventory.Inventory) ([]string, Partition, error) {
	p := NewPartition(candidates)
	if err := p.Validate(); err != nil {
		return nil, p, err
	}
	return Select(p, inv), p, nil
}
