// Package merge combines a base template with an ordered list of fragment
// templates. Exactly four top-level sections are merge targets; merging a
// section is a disjoint union of its item names, and any collision aborts
// the whole merge.
package merge

import (
	"fmt"

	log "github.com/charmbracelet/log"

	errUtils "github.com/cfmerge/cfmerge/errors"
	"github.com/cfmerge/cfmerge/pkg/template"
)

// SectionNames lists the top-level sections subject to merging, in the fixed
// order they are processed for every fragment. All other top-level keys come
// from the base only; fragments' non-section keys are ignored.
var SectionNames = []string{"Parameters", "Conditions", "Resources", "Outputs"}

// MergeSection merges one section of src into dest. Items are appended in
// src's declared order; an item name already present in dest's section fails
// the merge. destLabel names dest's owner (the base path) in errors.
func MergeSection(dest *template.Mapping, destLabel string, src *template.Document, section string) error {
	raw, ok := src.Root.Get(section)
	if !ok {
		return nil
	}
	srcSection, ok := raw.(*template.Mapping)
	if !ok {
		return fmt.Errorf("%w: section %s in %s", errUtils.ErrSectionNotMapping, section, src.Path)
	}

	var destSection *template.Mapping
	if cur, ok := dest.Get(section); ok {
		destSection, ok = cur.(*template.Mapping)
		if !ok {
			return fmt.Errorf("%w: section %s in %s", errUtils.ErrSectionNotMapping, section, destLabel)
		}
	} else {
		destSection = template.NewMapping()
		dest.Set(section, destSection)
	}

	for _, name := range srcSection.Keys() {
		if destSection.Has(name) {
			return fmt.Errorf("%w: %s item %q redefined by %s", errUtils.ErrDuplicateSectionKey, section, name, src.Path)
		}
		item, _ := srcSection.Get(name)
		destSection.Set(name, item)
	}
	return nil
}

// MergeTemplates merges the base document with the fragments, applied in the
// given order. The inputs are never mutated: the result starts as a copy of
// the base (top-level key order kept, section mappings copied one level deep)
// and grows by section union. The first error aborts the merge and no
// partial result is returned.
func MergeTemplates(base *template.Document, fragments []*template.Document) (*template.Document, error) {
	merged := base.Root.Clone()
	for _, section := range SectionNames {
		if cur, ok := merged.Get(section); ok {
			if m, ok := cur.(*template.Mapping); ok {
				merged.Set(section, m.Clone())
			}
		}
	}

	for _, fragment := range fragments {
		for _, section := range SectionNames {
			if err := MergeSection(merged, base.Path, fragment, section); err != nil {
				return nil, err
			}
		}
		log.Debug("merged fragment", "file", fragment.Path)
	}

	return &template.Document{Path: base.Path, Root: merged}, nil
}
