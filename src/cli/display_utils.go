package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"oreore-lsp/src/internal/constants"
	"oreore-lsp/src/server/providers"
)

// treeNode is the JSON shape of PrintTree --json
type treeNode struct {
	*providers.TreeItem
	Children []*treeNode `json:"children,omitempty"`
}

// PrintTree renders the tree view served to editors. The text form puts
// one node per line, indented by depth, with the command a leaf runs.
func PrintTree(ctx context.Context, out io.Writer, asJSON bool) error {
	reg := providers.NewRegistry(providers.NewSelector(constants.DefaultLanguageID))
	var subs providers.Subscriptions
	if err := providers.Activate(reg, &subs, providers.Options{}); err != nil {
		return err
	}
	defer func() { _ = subs.Dispose() }()

	tree, ok := reg.TreeDataProvider(constants.TreeViewID)
	if !ok {
		return fmt.Errorf("tree view %q is not registered", constants.TreeViewID)
	}

	if asJSON {
		return printTreeJSON(ctx, out, tree)
	}

	return providers.WalkTree(ctx, tree, func(item *providers.TreeItem, depth int) error {
		line := strings.Repeat("  ", depth) + item.Label
		if item.Command != nil {
			line += fmt.Sprintf("  -> %s (%s)", item.Command.Command, item.Command.Title)
		} else {
			line += fmt.Sprintf("  [%s]", item.CollapsibleState)
		}
		_, err := fmt.Fprintln(out, line)
		return err
	})
}

func printTreeJSON(ctx context.Context, out io.Writer, tree providers.TreeDataProvider) error {
	var roots []*treeNode
	// path[d] is the latest node seen at depth d
	var path []*treeNode

	err := providers.WalkTree(ctx, tree, func(item *providers.TreeItem, depth int) error {
		node := &treeNode{TreeItem: item}
		path = append(path[:depth], node)
		if depth == 0 {
			roots = append(roots, node)
			return nil
		}
		parent := path[depth-1]
		parent.Children = append(parent.Children, node)
		return nil
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(roots)
}
