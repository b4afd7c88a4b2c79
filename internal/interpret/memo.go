package interpret

import "github.com/shapelang/shapecore/internal/diagnostic"

// lazyBox is the fix-point memoization box spec §4.4/§9 describes for
// Lazy nodes: a slot that is written at most once, synchronously,
// before any recursive reference to it can possibly be invoked (the
// write happens during compilation; reads only happen during later
// parse calls). A plain set-once flag gives the "simple guarded set"
// spec §5 asks for without overstating the actual concurrency need.
type lazyBox struct {
	set    bool
	parser diagnostic.Parser
}

// forward is installed in the compiler's node cache before the boxed
// Lazy node's body is compiled, so a self-reference reached while
// compiling that body resolves to this same forwarding parser instead
// of recursing into the compiler again.
func (b *lazyBox) forward(input interface{}, opts diagnostic.Options) diagnostic.Result {
	if !b.set {
		panic("interpret: lazy schema parser invoked before its recursive body finished compiling")
	}
	return b.parser(input, opts)
}

func (b *lazyBox) resolve(p diagnostic.Parser) {
	if b.set {
		panic("interpret: lazy box resolved twice")
	}
	b.parser = p
	b.set = true
}
