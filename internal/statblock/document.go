// Package statblock loads statblock documents and formats them as styled text.
package statblock

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Node is a read-only view of a JSON value. Lookups of absent or null paths
// report ok=false instead of failing, so callers decide what "render nothing"
// means.
type Node struct {
	r gjson.Result
}

// Get returns the node at path.
func (n Node) Get(path string) Node {
	return Node{r: n.r.Get(path)}
}

// Exists reports whether the node is present and not null.
func (n Node) Exists() bool {
	return n.r.Exists() && n.r.Type != gjson.Null
}

// String returns the string at path. Empty strings count as absent.
func (n Node) String(path string) (string, bool) {
	v := n.r.Get(path)
	if !v.Exists() || v.Type == gjson.Null || v.IsObject() || v.IsArray() {
		return "", false
	}
	s := v.String()
	if s == "" {
		return "", false
	}
	return s, true
}

// First returns the first present string among paths.
func (n Node) First(paths ...string) (string, bool) {
	for _, p := range paths {
		if s, ok := n.String(p); ok {
			return s, true
		}
	}
	return "", false
}

// Int returns the integer at path. Numeric strings are accepted.
func (n Node) Int(path string) (int, bool) {
	v := n.r.Get(path)
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		i, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// FirstInt returns the first present integer among paths.
func (n Node) FirstInt(paths ...string) (int, bool) {
	for _, p := range paths {
		if i, ok := n.Int(p); ok {
			return i, true
		}
	}
	return 0, false
}

// Strings returns the non-empty strings of the array at path.
func (n Node) Strings(path string) []string {
	var out []string
	for _, v := range n.r.Get(path).Array() {
		if s := v.String(); s != "" && v.Type != gjson.Null {
			out = append(out, s)
		}
	}
	return out
}

// Array returns the elements of the array at path.
func (n Node) Array(path string) []Node {
	var out []Node
	for _, v := range n.r.Get(path).Array() {
		out = append(out, Node{r: v})
	}
	return out
}

// Entries returns the key/value pairs of the object at path in document order.
func (n Node) Entries(path string) []Entry {
	var out []Entry
	v := n.r.Get(path)
	if !v.IsObject() {
		return nil
	}
	v.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Entry{Key: key.String(), Value: Node{r: value}})
		return true
	})
	return out
}

// Entry is one member of a JSON object.
type Entry struct {
	Key   string
	Value Node
}

// Document is a statblock export: an actor with embedded items.
type Document struct {
	Node
}

// Item is an embedded item (strike, action, lore, spell, ...).
type Item struct {
	Node
	ID   string
	Name string
	Type string
}

// Parse reads a document from JSON.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("document must be a JSON object")
	}
	return &Document{Node: Node{r: root}}, nil
}

// Load reads a document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Items returns embedded items of the given types in document order. With
// no types, every item is returned.
func (d *Document) Items(types ...string) []Item {
	var out []Item
	for _, n := range d.Array("items") {
		typ, _ := n.String("type")
		if len(types) > 0 && !contains(types, typ) {
			continue
		}
		name, _ := n.String("name")
		id, _ := n.String("_id")
		out = append(out, Item{Node: n, ID: id, Name: name, Type: typ})
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
