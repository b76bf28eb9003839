// Package wto builds Bourdoncle weak topological orderings over an
// arbitrary directed graph: a sequence of vertices and strongly
// connected components, each component itself ordered the same way,
// that a chaotic-iteration fixpoint solver can walk to decide where
// widening is needed and in what order nodes stabilize.
package wto

import (
	"fmt"
	"math"
	"strings"
)

// Graph is the minimal shape wto needs: given a node, list the nodes it
// has an edge to. Node identity is whatever N's equality means, so N is
// typically a small value type (an int, a string, a hash).
type Graph[N comparable] interface {
	Successors(n N) []N
}

// Component is one element of an Ordering: either a single vertex, or a
// strongly connected component headed by its entry node and containing
// the weak topological ordering of the rest of the component's body.
type Component[N comparable] struct {
	head   N
	isSCC  bool
	nested []Component[N]
}

// HeadNode returns the component's entry node — the node itself for a
// plain vertex, or the SCC's single entry point for a loop.
func (c Component[N]) HeadNode() N { return c.head }

// IsVertex reports whether this component is a single, non-looping node.
func (c Component[N]) IsVertex() bool { return !c.isSCC }

// IsSCC reports whether this component is a strongly connected
// component headed by HeadNode.
func (c Component[N]) IsSCC() bool { return c.isSCC }

// Components returns the nested ordering of an SCC's body, not
// including the head itself. Empty for a plain vertex.
func (c Component[N]) Components() []Component[N] { return c.nested }

func (c Component[N]) String() string {
	if !c.isSCC {
		return fmt.Sprint(c.head)
	}
	var b strings.Builder
	b.WriteByte('(')
	fmt.Fprint(&b, c.head)
	for _, n := range c.nested {
		b.WriteByte(' ')
		b.WriteString(n.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Ordering is a full weak topological ordering rooted at one entry node.
type Ordering[N comparable] struct {
	components []Component[N]
}

// Components returns the top-level sequence of vertices and SCCs, in
// order.
func (o Ordering[N]) Components() []Component[N] { return o.components }

func (o Ordering[N]) String() string {
	parts := make([]string, len(o.components))
	for i, c := range o.components {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// the original dfn map uses 0 to mean "unvisited" and relies on that
// default zero value on lookup; infinity marks a node whose final
// position in the ordering has been decided, so it can no longer
// participate in any ancestor's loop detection.
const infinity = math.MaxInt

type builder[N comparable] struct {
	graph Graph[N]
	num   int
	dfn   map[N]int
	stack []N
}

func (b *builder[N]) pop() N {
	n := len(b.stack) - 1
	w := b.stack[n]
	b.stack = b.stack[:n]
	return w
}

// prepend inserts comp at the front of *partition. Every call to visit
// that closes a node — whether as a plain vertex or as a freshly built
// SCC — prepends its own result into the partition it was handed;
// because descendants close (and so prepend) before their ancestors do,
// this single rule alone reconstructs left-to-right reading order with
// no separate bookkeeping for "append children, then insert the head".
func prepend[N comparable](partition *[]Component[N], comp Component[N]) {
	*partition = append([]Component[N]{comp}, *partition...)
}

func (b *builder[N]) visit(vertex N, partition *[]Component[N]) int {
	b.stack = append(b.stack, vertex)
	b.num++
	b.dfn[vertex] = b.num
	minDfn := b.dfn[vertex]
	loop := false

	for _, succ := range b.graph.Successors(vertex) {
		var succMin int
		if b.dfn[succ] == 0 {
			succMin = b.visit(succ, partition)
		} else {
			succMin = b.dfn[succ]
		}
		if succMin <= minDfn {
			minDfn = succMin
			loop = true
		}
	}

	if minDfn == b.dfn[vertex] {
		b.dfn[vertex] = infinity
		w := b.pop()
		if loop {
			for w != vertex {
				b.dfn[w] = 0
				w = b.pop()
			}
			nested := b.component(vertex)
			prepend(partition, Component[N]{head: vertex, isSCC: true, nested: nested})
		} else {
			prepend(partition, Component[N]{head: vertex})
		}
	}
	return minDfn
}

// component re-explores vertex's successors — whose dfn values were
// just reset to 0 by the loop in visit — to build the weak topological
// ordering of the strongly connected component vertex heads.
func (b *builder[N]) component(vertex N) []Component[N] {
	var nested []Component[N]
	for _, succ := range b.graph.Successors(vertex) {
		if b.dfn[succ] == 0 {
			b.visit(succ, &nested)
		}
	}
	return nested
}

// Compute builds the weak topological ordering of g reachable from
// root.
func Compute[N comparable](root N, g Graph[N]) Ordering[N] {
	b := &builder[N]{graph: g, dfn: map[N]int{}}
	var top []Component[N]
	b.visit(root, &top)
	return Ordering[N]{components: top}
}
