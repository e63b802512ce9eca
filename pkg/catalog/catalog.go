// Package catalog defines the canonical set of dissertation areas and the
// folding rules that map free-form preference entries onto it.
package catalog

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Area is a canonical area name as it appears in the catalog declaration.
// Two areas are the same if and only if their folded forms are equal.
type Area string

// Fold reduces a raw area name to its canonical comparison form: lower-case
// with whitespace, digits, dots and commas removed. Entries copied out of
// numbered lists ("1. Databases", "Databases,") therefore fold the same way
// as the plain name. Folding is idempotent.
func Fold(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || unicode.IsDigit(r) || r == '.' || r == ',' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// display trims list numbering noise from a declared name, leaving the
// human-readable form used in outputs. Folding guarantees that whenever the
// folded form is non-empty the display form is too.
func display(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "0123456789.,")
	return strings.TrimSpace(name)
}

// Catalog is the closed set of areas a run accepts. It is immutable after
// construction.
type Catalog struct {
	areas []Area          // declaration order
	index map[string]Area // folded form -> canonical area
}

// New builds a catalog from explicitly declared area names, preserving
// declaration order. Names folding to the same form are rejected with
// ErrDuplicateArea; a name folding to the empty string is rejected outright
// since no entry could ever resolve to it.
func New(names []string) (*Catalog, error) {
	c := &Catalog{index: make(map[string]Area, len(names))}
	for _, name := range names {
		folded := Fold(name)
		if folded == "" {
			return nil, fmt.Errorf("catalog: area %q folds to the empty string", name)
		}
		if prev, ok := c.index[folded]; ok {
			return nil, fmt.Errorf("%w: %q collides with %q", ErrDuplicateArea, name, prev)
		}
		area := Area(display(name))
		c.index[folded] = area
		c.areas = append(c.areas, area)
	}
	if len(c.areas) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// Derive builds a catalog from the areas supervisors actually offer, in
// first-appearance order. Blank cells are skipped and repeated names collapse
// onto the first spelling seen, so supervisor lists with mixed case or list
// numbering still yield a single area each.
func Derive(lists [][]string) (*Catalog, error) {
	c := &Catalog{index: make(map[string]Area)}
	for _, list := range lists {
		for _, name := range list {
			folded := Fold(name)
			if folded == "" {
				continue
			}
			if _, ok := c.index[folded]; ok {
				continue
			}
			area := Area(display(name))
			c.index[folded] = area
			c.areas = append(c.areas, area)
		}
	}
	if len(c.areas) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// Resolve maps a raw preference entry onto its catalog area. Matching is
// exact after folding; anything else fails with *UnknownAreaError carrying
// the offending string and its source record.
func (c *Catalog) Resolve(raw, source string) (Area, error) {
	folded := Fold(raw)
	if area, ok := c.index[folded]; ok && folded != "" {
		return area, nil
	}
	return "", &UnknownAreaError{Raw: raw, Folded: folded, Source: source}
}

// Areas returns the catalog areas in declaration order.
func (c *Catalog) Areas() []Area {
	return slices.Clone(c.areas)
}

// Len returns the number of areas in the catalog.
func (c *Catalog) Len() int {
	return len(c.areas)
}

// Contains reports whether area resolves to a catalog area.
func (c *Catalog) Contains(area Area) bool {
	_, ok := c.index[Fold(string(area))]
	return ok
}
