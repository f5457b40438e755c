package alphabeta

import (
	"sort"

	"github.com/samber/lo"
)

// Order returns succs sorted strongest-first for the side to move:
// descending evaluation when maximizing, ascending when minimizing. The
// sort is stable, so equal scores keep generator order. succs itself is
// left alone.
func Order[S State](succs []S, maximizing bool, eval Evaluator[S]) []S {
	scored := lo.Map(succs, func(s S, _ int) lo.Tuple2[S, int] {
		return lo.T2(s, eval.Evaluate(s))
	})
	sort.SliceStable(scored, func(i, j int) bool {
		if maximizing {
			return scored[i].B > scored[j].B
		}
		return scored[i].B < scored[j].B
	})
	return lo.Map(scored, func(t lo.Tuple2[S, int], _ int) S {
		return t.A
	})
}
