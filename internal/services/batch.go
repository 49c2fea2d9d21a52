package services

// BatchResult is the aggregate outcome of a bulk flow. Individual failures
// are logged and counted only; the caller sees a single summary.
type BatchResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	FailedIDs    []string `json:"failedIds,omitempty"`
}

// runBatch applies apply(i) for every index in [0, n). A failing item never
// halts the remaining items: each write is attempted exactly once and the
// batch continues past failures. key(i) identifies the failed item in the
// result.
func runBatch(n int, key func(i int) string, apply func(i int) error) BatchResult {
	var result BatchResult
	for i := 0; i < n; i++ {
		if err := apply(i); err != nil {
			result.ErrorCount++
			result.FailedIDs = append(result.FailedIDs, key(i))
			continue
		}
		result.SuccessCount++
	}
	return result
}
