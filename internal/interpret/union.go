package interpret

import (
	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
)

// VisitUnion tries every member against the input and keeps the
// first Success in declaration order. Failing that, it keeps the
// Warning candidate with the fewest Unexpected diagnostics anywhere in
// its error tree (ties broken by declaration order) — the member that
// recognized the most of the input, not just the first one that
// merely didn't outright fail. If every member fails outright, the
// branches are reported together under one Member-wrapped error per
// branch.
//
// A member can only ever become a Warning candidate if Unexpected is
// non-fatal while it is tried — but the caller may well have asked for
// fatal Unexpected (IsUnexpectedAllowed: false). Per spec §8's literal
// worked example (a two-branch union, one branch matching except for
// one excess key, IsUnexpectedAllowed: false), the union must still
// surface that branch as the winning Warning with the excess key
// reported but dropped from the output — the member that came closest
// rather than an outright Failure. Each member is therefore tried with
// TentativeUnexpected set whenever the caller didn't already allow
// unexpected values outright; TentativeUnexpected downgrades Unexpected
// to non-fatal the same way IsUnexpectedAllowed does, but (unlike
// IsUnexpectedAllowed) drops the value from the output, since the
// caller never actually opted in to keeping it.
func (c *compiler) VisitUnion(n *ast.Union) interface{} {
	parsers := make([]diagnostic.Parser, len(n.Types))
	for i, t := range n.Types {
		parsers[i] = c.compile(t)
	}

	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		branchOpts := opts
		if !branchOpts.IsUnexpectedAllowed {
			branchOpts.TentativeUnexpected = true
		}

		var bestWarning *diagnostic.Result
		bestWarningUnexpected := -1
		var failureErrs []diagnostic.ParseError

		for _, p := range parsers {
			res := p(input, branchOpts)
			switch res.Kind {
			case diagnostic.ResultSuccess:
				return res
			case diagnostic.ResultWarning:
				n := diagnostic.CountUnexpected(res.Errors)
				if bestWarning == nil || n < bestWarningUnexpected {
					r := res
					bestWarning = &r
					bestWarningUnexpected = n
				}
			case diagnostic.ResultFailure:
				failureErrs = append(failureErrs, diagnostic.Member(res.Errors))
			}
		}

		if bestWarning != nil {
			return *bestWarning
		}
		return diagnostic.Fail(failureErrs)
	}
}
