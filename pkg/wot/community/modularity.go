package community

import (
	"github.com/matzehuels/wotscan/pkg/wot"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

// Modularity returns the directed modularity of partition on g:
//
//	Q = 1/m Σ_ij [A_ij - k_i^out k_j^in / m] δ(c_i, c_j)
//
// where m is the edge count. Per community this is L_c/m - K_c^out K_c^in / m²
// with L_c the internal edges. Labels missing from partition form no
// community. An edgeless graph has modularity 0.
func Modularity(g wot.Digraph, partition [][]int) float64 {
	n := g.Len()
	community := scc.Membership(partition, n)

	internal := make([]float64, len(partition))
	kOut := make([]float64, len(partition))
	kIn := make([]float64, len(partition))
	m := 0.0
	for v := range n {
		for w := range g.Neighbors(v) {
			m++
			cv, cw := community[v], community[w]
			if cv >= 0 {
				kOut[cv]++
			}
			if cw >= 0 {
				kIn[cw]++
			}
			if cv >= 0 && cv == cw {
				internal[cv]++
			}
		}
	}
	if m == 0 {
		return 0
	}

	q := 0.0
	for c := range partition {
		q += internal[c]/m - kOut[c]*kIn[c]/(m*m)
	}
	return q
}
