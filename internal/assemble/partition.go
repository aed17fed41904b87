package assemble

// DefaultBatchSize bounds how many documents go into one print run.
// Beyond a few hundred documents a single rendering pass risks exhausting
// the browser; callers split the set and render batch by batch.
const DefaultBatchSize = 300

// Batch describes one contiguous slice of a partitioned document set.
// Start and End index into the ordered set, zero-based, End inclusive.
type Batch struct {
	Number int // 1-based position within the partition
	Total  int // number of batches in the partition
	Start  int
	End    int
	Count  int
}

// Partition splits an ordered set of total documents into contiguous batches
// of at most size documents each. The last batch holds the remainder.
// A non-positive size falls back to DefaultBatchSize; total <= 0 yields nil.
func Partition(total, size int) []Batch {
	if total <= 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultBatchSize
	}

	count := (total + size - 1) / size
	batches := make([]Batch, 0, count)
	for i := 0; i < count; i++ {
		start := i * size
		end := start + size - 1
		if end >= total {
			end = total - 1
		}
		batches = append(batches, Batch{
			Number: i + 1,
			Total:  count,
			Start:  start,
			End:    end,
			Count:  end - start + 1,
		})
	}
	return batches
}
