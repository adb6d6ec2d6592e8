package rules

import (
	"fmt"
	"sort"
)

// VisitFunc is called for each node during Walk. Returning false skips the
// node's children.
type VisitFunc func(path string, depth int, n Node) bool

// Walk visits n and its descendants depth-first, parent before children.
// Paths are JSON-path-like locations rooted at "$". Walk stops descending
// past maxDepth (0 means unlimited) so that a tree built with a cycle in Go
// code cannot loop forever.
func Walk(n Node, maxDepth int, fn VisitFunc) {
	walk(n, "$", 0, maxDepth, fn)
}

func walk(n Node, path string, depth, maxDepth int, fn VisitFunc) {
	if IsNil(n) {
		return
	}
	if !fn(path, depth, n) {
		return
	}
	if maxDepth > 0 && depth >= maxDepth {
		return
	}
	switch v := n.(type) {
	case *Not:
		walk(v.Child, path+".child", depth+1, maxDepth, fn)
	case *Implies:
		walk(v.If, path+".if", depth+1, maxDepth, fn)
		walk(v.Then, path+".then", depth+1, maxDepth, fn)
	default:
		for i, c := range ChildrenOf(n) {
			walk(c, fmt.Sprintf("%s.children[%d]", path, i), depth+1, maxDepth, fn)
		}
	}
}

// Depth returns the number of levels in the tree, capped at limit+1 when
// limit > 0. A single leaf has depth 1.
func Depth(n Node, limit int) int {
	deepest := 0
	Walk(n, limit, func(_ string, depth int, _ Node) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

const symptomWalkLimit = 1024

// Symptoms returns the sorted, de-duplicated symptom ids referenced by the tree.
func Symptoms(n Node) []string {
	seen := make(map[string]bool)
	Walk(n, symptomWalkLimit, func(_ string, _ int, node Node) bool {
		if s, ok := node.(*Symptom); ok {
			seen[s.ID] = true
		}
		return true
	})
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
