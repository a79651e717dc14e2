package block

// Walk visits blocks depth first, parents before children. Returning false
// from fn skips the children of that block.
func Walk(blocks []Block, fn func(Block) bool) {
	for _, b := range blocks {
		if !fn(b) {
			continue
		}
		if p, ok := b.(Parent); ok {
			Walk(p.ChildBlocks(), fn)
		}
	}
}

// Count returns the number of blocks in the tree.
func Count(blocks []Block) int {
	n := 0
	Walk(blocks, func(Block) bool {
		n++
		return true
	})
	return n
}
