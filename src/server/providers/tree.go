package providers

import (
	"context"
	"fmt"
	"strings"

	"oreore-lsp/src/internal/errors"
)

// TreeItemCollapsibleState mirrors the editor's tree node states
type TreeItemCollapsibleState int

const (
	TreeItemNone      TreeItemCollapsibleState = 0
	TreeItemCollapsed TreeItemCollapsibleState = 1
	TreeItemExpanded  TreeItemCollapsibleState = 2
)

func (s TreeItemCollapsibleState) String() string {
	switch s {
	case TreeItemNone:
		return "none"
	case TreeItemCollapsed:
		return "collapsed"
	case TreeItemExpanded:
		return "expanded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TreeCommand is run by the client when a tree node is activated
type TreeCommand struct {
	Command   string        `json:"command"`
	Title     string        `json:"title"`
	Arguments []interface{} `json:"arguments"`
}

// TreeItem is one node of a tree view
type TreeItem struct {
	ID               string                   `json:"id"`
	Label            string                   `json:"label"`
	CollapsibleState TreeItemCollapsibleState `json:"collapsibleState"`
	Command          *TreeCommand             `json:"command,omitempty"`
}

// StaticTreeProvider serves a fixed two level tree: root1 and root2,
// each with two leaves that say hello when activated.
type StaticTreeProvider struct {
	roots    []*TreeItem
	children map[string][]*TreeItem
	items    map[string]*TreeItem
}

// NewStaticTreeProvider builds the tree, wiring leaves to commandID
func NewStaticTreeProvider(commandID string) *StaticTreeProvider {
	p := &StaticTreeProvider{
		children: make(map[string][]*TreeItem),
		items:    make(map[string]*TreeItem),
	}

	for _, root := range []string{"root1", "root2"} {
		node := &TreeItem{ID: root, Label: root, CollapsibleState: TreeItemCollapsed}
		p.roots = append(p.roots, node)
		p.items[root] = node

		for _, child := range []string{"child1", "child2"} {
			id := root + "/" + child
			leaf := &TreeItem{
				ID:               id,
				Label:            id,
				CollapsibleState: TreeItemNone,
				Command: &TreeCommand{
					Command:   commandID,
					Title:     "say hello",
					Arguments: []interface{}{},
				},
			}
			p.children[root] = append(p.children[root], leaf)
			p.items[id] = leaf
		}
	}

	return p
}

// TreeItem returns the node with id
func (p *StaticTreeProvider) TreeItem(_ context.Context, id string) (*TreeItem, error) {
	item, ok := p.items[id]
	if !ok {
		return nil, errors.NewNoResultError("tree", fmt.Sprintf("no tree item %q", id))
	}
	return item, nil
}

// Children returns the roots for an empty parentID, otherwise the
// children of parentID. Leaves have no children.
func (p *StaticTreeProvider) Children(_ context.Context, parentID string) ([]*TreeItem, error) {
	if strings.TrimSpace(parentID) == "" {
		return p.roots, nil
	}
	if _, ok := p.items[parentID]; !ok {
		return nil, errors.NewNoResultError("tree", fmt.Sprintf("no tree item %q", parentID))
	}
	return p.children[parentID], nil
}

// WalkTree visits every node depth first, roots in order
func WalkTree(ctx context.Context, p TreeDataProvider, visit func(item *TreeItem, depth int) error) error {
	var walk func(parentID string, depth int) error
	walk = func(parentID string, depth int) error {
		items, err := p.Children(ctx, parentID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := visit(item, depth); err != nil {
				return err
			}
			if item.CollapsibleState != TreeItemNone {
				if err := walk(item.ID, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk("", 0)
}
