package composer

import "strings"

// DraftPost is the mutable working copy of a post, owned exclusively by
// the composer while the form is open. LocationText is free text and may
// or may not correspond to a confirmed location.
type DraftPost struct {
	Title            string
	ShortDescription string
	LongDescription  string
	LocationText     string
	CategoryID       int64
	TagsText         string
}

// Tags splits the free tags text into normalized tags: lowercased,
// leading '#' stripped, deduplicated, order preserved.
func (d *DraftPost) Tags() []string {
	fields := strings.FieldsFunc(d.TagsText, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]struct{}, len(fields))
	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		tag := strings.ToLower(strings.TrimPrefix(field, "#"))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Reset clears the draft back to an empty form.
func (d *DraftPost) Reset() {
	*d = DraftPost{}
}
