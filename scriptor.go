// Package scriptor is a command dispatch, parsing, and completion library
// modeled on a command tree: literal and argument nodes composed into
// paths, each optionally executable, redirectable to another part of the
// tree, or forked across multiple sources.
package scriptor

// Dispatcher holds a command tree and runs, parses, and completes against
// it. The zero value is a Dispatcher with an empty Root, ready to use.
type Dispatcher struct {
	Root RootCommandNode

	resultConsumer ResultConsumer
}

// Register adds the given command trees to the Root node of this
// Dispatcher. Identically named literals merge: a command registered twice
// under the same top-level name extends, rather than replaces, the
// existing subtree. commands is typed as LiteralNodeBuilder rather than the
// concrete *LiteralArgumentBuilder so that a chained builder
// (Literal(...).Then(...).Executes(...), whose static type is the
// interface) can be passed straight in.
func (d *Dispatcher) Register(commands ...LiteralNodeBuilder) *RootCommandNode {
	for _, c := range commands {
		d.Root.AddChild(c.Build())
	}
	return &d.Root
}

// FindNode finds a CommandNode by its path from the Root.
func (d *Dispatcher) FindNode(path ...string) CommandNode {
	var node CommandNode = &d.Root
	for _, p := range path {
		child, ok := node.ChildrenOrdered().Get(p)
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Path gets the path from the Root to the given CommandNode.
func (d *Dispatcher) Path(target CommandNode) []string {
	var (
		nodes [][]CommandNode
		path  []string
	)
	d.addPaths(&d.Root, &nodes, nil)
	for _, p := range nodes {
		if len(p) == 0 {
			continue
		}
		if p[len(p)-1] == target {
			path = make([]string, 0, len(p)-1)
			for _, n := range p[1:] {
				path = append(path, n.Name())
			}
			return path
		}
	}
	return nil
}

func (d *Dispatcher) addPaths(node CommandNode, result *[][]CommandNode, parents []CommandNode) {
	current := append(append([]CommandNode{}, parents...), node)
	*result = append(*result, current)
	node.ChildrenOrdered().Range(func(_ string, child CommandNode) bool {
		d.addPaths(child, result, current)
		return true
	})
}

// AllPaths renders the full, space-joined path of every node reachable from
// the given node, or from the Root if from is nil. The starting node itself
// is never included in its own path, so passing the Root (the default)
// skips it the same way passing nil does.
func (d *Dispatcher) AllPaths(from CommandNode) []string {
	if from == nil {
		from = &d.Root
	}
	var (
		nodes [][]CommandNode
		out   []string
	)
	d.addPaths(from, &nodes, nil)
	for _, p := range nodes {
		if len(p) < 2 {
			continue
		}
		var parts []string
		for _, n := range p[1:] {
			parts = append(parts, n.Name())
		}
		out = append(out, joinArgumentSeparator(parts))
	}
	return out
}

func joinArgumentSeparator(parts []string) string {
	out := ""
	for i, p := range parts {
		if i != 0 {
			out += string(ArgumentSeparator)
		}
		out += p
	}
	return out
}
