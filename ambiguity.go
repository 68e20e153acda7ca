package scriptor

// AmbiguityConsumer is notified whenever two sibling nodes both accept the
// same example input. It receives the shared parent, the two ambiguous
// siblings, and the inputs that both of them would accept.
type AmbiguityConsumer func(parent, child, sibling CommandNode, inputs []string)

// FindAmbiguities walks the whole command tree and reports, via consumer,
// every pair of sibling nodes that can both match the same input. Detection
// is best-effort: it relies on each node's Examples and only catches
// ambiguity a representative example happens to expose, not every possible
// overlap.
func (d *Dispatcher) FindAmbiguities(consumer AmbiguityConsumer) {
	d.Root.findAmbiguities(&d.Root, consumer)
}
