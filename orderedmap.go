package scriptor

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Container is the base interface container structures implement.
type Container interface {
	// Empty returns true if the map does not contain any elements.
	Empty() bool
	// Size returns the number of elements in the map.
	Size() int
}

// StringCommandNodeMap holds child nodes keyed by name in a regular hash
// table, using a doubly-linked list to preserve insertion order. Command
// trees rely on insertion order for deterministic parse traversal and
// usage-string rendering, so a plain Go map cannot serve this role.
type StringCommandNodeMap interface {
	// Put inserts a key-value pair into the map.
	Put(key string, value CommandNode)
	// Get searches the element in the map by key and returns its value, or
	// nil and false if the key is not present.
	Get(key string) (value CommandNode, found bool)
	// Keys returns all keys in insertion order.
	Keys() []string
	// Values returns all values in insertion order.
	Values() []CommandNode
	// Range calls f once for each element in insertion order until f
	// returns false.
	Range(f func(key string, value CommandNode) bool)

	Container
}

// NewStringCommandNodeMap returns a new, empty StringCommandNodeMap.
func NewStringCommandNodeMap() StringCommandNodeMap {
	return &stringCommandNodeMap{linkedhashmap.New()}
}

type stringCommandNodeMap struct{ *linkedhashmap.Map }

var _ StringCommandNodeMap = (*stringCommandNodeMap)(nil)

func (m *stringCommandNodeMap) Put(key string, value CommandNode) { m.Map.Put(key, value) }

func (m *stringCommandNodeMap) Get(key string) (CommandNode, bool) {
	v, found := m.Map.Get(key)
	if !found {
		return nil, false
	}
	return v.(CommandNode), true
}

func (m *stringCommandNodeMap) Keys() []string {
	keys := m.Map.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

func (m *stringCommandNodeMap) Values() []CommandNode {
	values := m.Map.Values()
	out := make([]CommandNode, len(values))
	for i, v := range values {
		out[i] = v.(CommandNode)
	}
	return out
}

func (m *stringCommandNodeMap) Range(f func(key string, value CommandNode) bool) {
	it := m.Map.Iterator()
	for it.Next() {
		if !f(it.Key().(string), it.Value().(CommandNode)) {
			return
		}
	}
}

// CommandNodeStringMap holds rendered usage strings keyed by the node they
// describe, preserving the order in which nodes were visited. Used by
// Dispatcher.SmartUsage.
type CommandNodeStringMap interface {
	// Put inserts a key-value pair into the map.
	Put(key CommandNode, value string)
	// Get searches the element in the map by key and returns its value, or
	// the zero value and false if the key is not present.
	Get(key CommandNode) (value string, found bool)
	// Keys returns all keys in insertion order.
	Keys() []CommandNode
	// Range calls f once for each element in insertion order until f
	// returns false.
	Range(f func(key CommandNode, value string) bool)

	Container
}

// NewCommandNodeStringMap returns a new, empty CommandNodeStringMap.
func NewCommandNodeStringMap() CommandNodeStringMap {
	return &commandNodeStringMap{linkedhashmap.New()}
}

type commandNodeStringMap struct{ *linkedhashmap.Map }

var _ CommandNodeStringMap = (*commandNodeStringMap)(nil)

func (m *commandNodeStringMap) Put(key CommandNode, value string) { m.Map.Put(key, value) }

func (m *commandNodeStringMap) Get(key CommandNode) (string, bool) {
	v, found := m.Map.Get(key)
	if !found {
		return "", false
	}
	return v.(string), true
}

func (m *commandNodeStringMap) Keys() []CommandNode {
	keys := m.Map.Keys()
	out := make([]CommandNode, len(keys))
	for i, k := range keys {
		out[i] = k.(CommandNode)
	}
	return out
}

func (m *commandNodeStringMap) Range(f func(key CommandNode, value string) bool) {
	it := m.Map.Iterator()
	for it.Next() {
		if !f(it.Key().(CommandNode), it.Value().(string)) {
			return
		}
	}
}
