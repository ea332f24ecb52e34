// internal/platform/workerpool/schedulers.go
package workerpool

// FIFOScheduler dispatches tasks in submission order.
type FIFOScheduler struct{}

// NewFIFOScheduler creates a FIFO scheduler.
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{}
}

// Schedule returns the identity permutation.
func (s *FIFOScheduler) Schedule(tasks []Task) []int {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	return order
}

// Name returns the scheduler name.
func (s *FIFOScheduler) Name() string {
	return "fifo"
}

// SpreadScheduler interleaves groups round-robin so consecutive dispatches hit
// different groups. With host addresses as groups, a host sees its ports probed
// one at a time across the pool instead of all at once.
// Within a group, submission order is kept.
type SpreadScheduler struct{}

// NewSpreadScheduler creates a round-robin scheduler.
func NewSpreadScheduler() *SpreadScheduler {
	return &SpreadScheduler{}
}

// Schedule orders by position within group, then by first appearance of the group.
func (s *SpreadScheduler) Schedule(tasks []Task) []int {
	var groups [][]int
	index := make(map[string]int)

	for i, t := range tasks {
		g, ok := index[t.Group()]
		if !ok {
			g = len(groups)
			index[t.Group()] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}

	order := make([]int, 0, len(tasks))
	for round := 0; len(order) < len(tasks); round++ {
		for _, members := range groups {
			if round < len(members) {
				order = append(order, members[round])
			}
		}
	}
	return order
}

// Name returns the scheduler name.
func (s *SpreadScheduler) Name() string {
	return "spread"
}

// SchedulerByName returns the scheduler for a config value; unknown names
// fall back to FIFO.
func SchedulerByName(name string) Scheduler {
	switch name {
	case "spread":
		return NewSpreadScheduler()
	default:
		return NewFIFOScheduler()
	}
}
