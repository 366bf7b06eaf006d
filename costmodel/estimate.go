package costmodel

import "fmt"

// CostEstimate pairs the number of rows an operator is expected to produce with the cost of producing them.
type CostEstimate struct {
	RowCount int64
	Cost     float64
}

// Sequence is the estimate of running e and then next, producing next's rows.
func (e CostEstimate) Sequence(next CostEstimate) CostEstimate {
	return CostEstimate{RowCount: next.RowCount, Cost: e.Cost + next.Cost}
}

// Nest is the estimate of running inner once for every row of e.
func (e CostEstimate) Nest(inner CostEstimate) CostEstimate {
	return CostEstimate{
		RowCount: e.RowCount * inner.RowCount,
		Cost:     e.Cost + float64(e.RowCount)*inner.Cost,
	}
}

// Less orders estimates by cost, then by row count.
func (e CostEstimate) Less(other CostEstimate) bool {
	if e.Cost != other.Cost {
		return e.Cost < other.Cost
	}
	return e.RowCount < other.RowCount
}

func (e CostEstimate) String() string {
	return fmt.Sprintf("rows = %d, cost = %g", e.RowCount, e.Cost)
}
