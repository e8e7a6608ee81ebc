// Package splaytree provides a self-adjusting binary search tree used as a
// memo store. Every search or insert rotates the touched node to the root, so
// repeated access to nearby keys is cheap in the amortized sense.
package splaytree

import "cmp"

type node[K cmp.Ordered, V any] struct {
	key   K
	value V
	left  *node[K, V]
	right *node[K, V]

	// parent is a back-reference used to walk upward while splaying; a node
	// is owned by the parent that points at it through left or right.
	parent *node[K, V]
}

// SplayTree is a key ordered binary search tree restructured on every access.
// The zero value is an empty tree ready to use.
//
// It is not safe for concurrent use.
type SplayTree[K cmp.Ordered, V any] struct {
	root      *node[K, V]
	size      int
	rotations uint64
}

// New returns an empty tree.
func New[K cmp.Ordered, V any]() *SplayTree[K, V] {
	return &SplayTree[K, V]{}
}

// Search looks up key. On a hit the node is splayed to the root and its value
// returned; on a miss the last node visited is splayed instead and ok is false.
func (t *SplayTree[K, V]) Search(key K) (value V, ok bool) {
	n, last := t.find(key)
	if n == nil {
		if last != nil {
			t.splay(last)
		}
		return value, false
	}

	t.splay(n)
	return n.value, true
}

// Insert stores value under key and splays that node to the root. An existing
// key has its value replaced in place.
func (t *SplayTree[K, V]) Insert(key K, value V) {
	n, last := t.find(key)
	if n != nil {
		n.value = value
		t.splay(n)
		return
	}

	n = &node[K, V]{key: key, value: value, parent: last}
	switch {
	case last == nil:
		t.root = n
	case key < last.key:
		last.left = n
	default:
		last.right = n
	}
	t.size++
	t.splay(n)
}

// find descends from the root. It returns the node holding key, or nil and
// the last node visited on the path.
func (t *SplayTree[K, V]) find(key K) (found, last *node[K, V]) {
	n := t.root
	for n != nil {
		last = n
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n, n
		}
	}
	return nil, last
}

// splay moves x to the root with zig, zig-zig and zig-zag steps.
func (t *SplayTree[K, V]) splay(x *node[K, V]) {
	for x.parent != nil {
		p := x.parent
		g := p.parent

		switch {
		case g == nil:
			// zig
			t.rotate(x)
		case (x == p.left) == (p == g.left):
			// zig-zig: grandparent edge first
			t.rotate(p)
			t.rotate(x)
		default:
			// zig-zag
			t.rotate(x)
			t.rotate(x)
		}
	}
}

// rotate promotes x above its parent, keeping in-order key order intact.
func (t *SplayTree[K, V]) rotate(x *node[K, V]) {
	p := x.parent
	g := p.parent

	if x == p.left {
		p.left = x.right
		if x.right != nil {
			x.right.parent = p
		}
		x.right = p
	} else {
		p.right = x.left
		if x.left != nil {
			x.left.parent = p
		}
		x.left = p
	}
	p.parent = x
	x.parent = g

	switch {
	case g == nil:
		t.root = x
	case g.left == p:
		g.left = x
	default:
		g.right = x
	}
	t.rotations++
}

// Len returns the number of keys in the tree.
func (t *SplayTree[K, V]) Len() int {
	return t.size
}

// Root returns the key currently at the root.
func (t *SplayTree[K, V]) Root() (key K, ok bool) {
	if t.root == nil {
		return key, false
	}
	return t.root.key, true
}

// Keys returns all keys in order. It does not splay.
func (t *SplayTree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	stack := make([]*node[K, V], 0, 32)
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		keys = append(keys, n.key)
		n = n.right
	}
	return keys
}

// Height returns the number of nodes on the longest root to leaf path.
func (t *SplayTree[K, V]) Height() int {
	type level struct {
		n     *node[K, V]
		depth int
	}

	height := 0
	if t.root == nil {
		return height
	}
	stack := []level{{t.root, 1}}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, l.depth)
		if l.n.left != nil {
			stack = append(stack, level{l.n.left, l.depth + 1})
		}
		if l.n.right != nil {
			stack = append(stack, level{l.n.right, l.depth + 1})
		}
	}
	return height
}

// Rotations returns the number of single rotations performed so far.
func (t *SplayTree[K, V]) Rotations() uint64 {
	return t.rotations
}

// Clear drops every node. The rotation counter is kept.
func (t *SplayTree[K, V]) Clear() {
	t.root = nil
	t.size = 0
}
