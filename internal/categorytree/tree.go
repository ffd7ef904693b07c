// internal/categorytree/tree.go

// Package categorytree arranges stored categories into a forest.
//
// Categories reference their parent by id only. A Forest indexes a flat
// slice of them so that callers can walk the hierarchy without one query per
// level. Siblings, roots included, are always visited in name order.
package categorytree

import (
	"sort"

	"github.com/google/uuid"

	"github.com/javajoker/storefront-catalog/internal/models"
)

type Node struct {
	Category models.Category
	Depth    int
}

type Forest struct {
	byID     map[uuid.UUID]*models.Category
	children map[uuid.UUID][]*models.Category
	roots    []*models.Category
}

// New indexes categories. A category whose parent is not in the slice is
// treated as a root.
func New(categories []models.Category) *Forest {
	f := &Forest{
		byID:     make(map[uuid.UUID]*models.Category, len(categories)),
		children: make(map[uuid.UUID][]*models.Category),
	}

	for i := range categories {
		f.byID[categories[i].ID] = &categories[i]
	}
	for i := range categories {
		c := &categories[i]
		if c.ParentID != nil {
			if _, ok := f.byID[*c.ParentID]; ok && *c.ParentID != c.ID {
				f.children[*c.ParentID] = append(f.children[*c.ParentID], c)
				continue
			}
		}
		f.roots = append(f.roots, c)
	}

	sortByName(f.roots)
	for _, siblings := range f.children {
		sortByName(siblings)
	}
	return f
}

func sortByName(categories []*models.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
}

func (f *Forest) Len() int { return len(f.byID) }

// Walk visits every category depth-first, parents before children. It stops
// when fn returns false.
func (f *Forest) Walk(fn func(Node) bool) {
	visited := make(map[uuid.UUID]bool, len(f.byID))
	for _, root := range f.roots {
		if !f.walk(root, 0, visited, fn) {
			return
		}
	}

	// Members of a parent cycle are unreachable from any root.
	var stranded []*models.Category
	for id, c := range f.byID {
		if !visited[id] {
			stranded = append(stranded, c)
		}
	}
	sortByName(stranded)
	for _, c := range stranded {
		if !f.walk(c, 0, visited, fn) {
			return
		}
	}
}

func (f *Forest) walk(c *models.Category, depth int, visited map[uuid.UUID]bool, fn func(Node) bool) bool {
	if visited[c.ID] {
		return true
	}
	visited[c.ID] = true

	if !fn(Node{Category: *c, Depth: depth}) {
		return false
	}
	for _, child := range f.children[c.ID] {
		if !f.walk(child, depth+1, visited, fn) {
			return false
		}
	}
	return true
}

// Ordered returns every category in traversal order.
func (f *Forest) Ordered() []models.Category {
	out := make([]models.Category, 0, len(f.byID))
	f.Walk(func(n Node) bool {
		out = append(out, n.Category)
		return true
	})
	return out
}

// Ancestors returns the path from the root down to the parent of id.
func (f *Forest) Ancestors(id uuid.UUID) []models.Category {
	c, ok := f.byID[id]
	if !ok {
		return nil
	}

	var path []models.Category
	seen := map[uuid.UUID]bool{id: true}
	for c.ParentID != nil {
		parent, ok := f.byID[*c.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		path = append(path, *parent)
		c = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
