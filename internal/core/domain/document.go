package domain

import (
	"iter"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Entry is one parsed occurrence of a key and its arguments at a specific line.
type Entry struct {
	Line   int
	Key    Key
	Raw    string
	Tokens []string
}

// Token returns the i-th token, or an empty string when the entry has fewer tokens.
func (e Entry) Token(i int) string {
	if i < 0 || i >= len(e.Tokens) {
		return ""
	}
	return e.Tokens[i]
}

// Value returns the first token. Scalar keys carry exactly one.
func (e Entry) Value() string {
	return e.Token(0)
}

// EntryRef is a lookup key into a Document. It never owns the entry.
type EntryRef struct {
	Key   Key `yaml:"key" cbor:"1,keyasint"`
	Index int `yaml:"index" cbor:"2,keyasint"`
}

// Document is an ordered multimap of key to entries.
// Both the per-key order and the global textual order are preserved.
type Document struct {
	entries map[Key][]Entry
	order   []EntryRef
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{entries: make(map[Key][]Entry)}
}

// Add appends an entry and returns its reference.
// Only the parser adds entries; a Document is treated as immutable afterwards.
func (d *Document) Add(e Entry) EntryRef {
	e.Tokens = slices.Clone(e.Tokens)
	ref := EntryRef{Key: e.Key, Index: len(d.entries[e.Key])}
	d.entries[e.Key] = append(d.entries[e.Key], e)
	d.order = append(d.order, ref)
	return ref
}

// Get returns the entries for a key in script order.
func (d *Document) Get(k Key) []Entry {
	return slices.Clone(d.entries[k])
}

// Refs returns references to the entries for a key in script order.
func (d *Document) Refs(k Key) []EntryRef {
	refs := make([]EntryRef, len(d.entries[k]))
	for i := range refs {
		refs[i] = EntryRef{Key: k, Index: i}
	}
	return refs
}

// First returns the first entry for a key.
func (d *Document) First(k Key) (Entry, bool) {
	es := d.entries[k]
	if len(es) == 0 {
		return Entry{}, false
	}
	return es[0], true
}

// Has reports whether at least one entry exists for a key.
func (d *Document) Has(k Key) bool {
	return len(d.entries[k]) > 0
}

// Count returns the number of entries for a key.
func (d *Document) Count(k Key) int {
	return len(d.entries[k])
}

// Lookup resolves a reference.
func (d *Document) Lookup(ref EntryRef) (Entry, bool) {
	es := d.entries[ref.Key]
	if ref.Index < 0 || ref.Index >= len(es) {
		return Entry{}, false
	}
	return es[ref.Index], true
}

// Len returns the total number of entries.
func (d *Document) Len() int {
	return len(d.order)
}

// Keys returns the distinct keys in order of first appearance.
func (d *Document) Keys() []Key {
	keys := make([]Key, 0, len(d.entries))
	seen := make(map[Key]struct{}, len(d.entries))
	for _, ref := range d.order {
		if _, ok := seen[ref.Key]; ok {
			continue
		}
		seen[ref.Key] = struct{}{}
		keys = append(keys, ref.Key)
	}
	return keys
}

// All iterates every entry in script order.
func (d *Document) All() iter.Seq2[EntryRef, Entry] {
	return func(yield func(EntryRef, Entry) bool) {
		for _, ref := range d.order {
			if !yield(ref, d.entries[ref.Key][ref.Index]) {
				return
			}
		}
	}
}

// Fingerprint returns a stable hash of the document's entries.
// Two documents parsed from texts that differ only in comments or blank lines
// share a fingerprint when their entries sit on the same lines.
func (d *Document) Fingerprint() uint64 {
	h := xxhash.New()
	for _, ref := range d.order {
		e := d.entries[ref.Key][ref.Index]
		_, _ = h.WriteString(strconv.Itoa(e.Line))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(e.Key))
		for _, t := range e.Tokens {
			_, _ = h.WriteString("\x00")
			_, _ = h.WriteString(t)
		}
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}
