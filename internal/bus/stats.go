package bus

// Stats is a point-in-time view of a bus for diagnostics.
type Stats struct {
	// Topics is the number of topics with at least one listener.
	Topics int

	// Listeners is the total number of registrations.
	Listeners int

	// Emitted counts emissions per topic, including ones with no listener.
	Emitted map[Topic]uint64

	// Deliveries counts listener invocations.
	Deliveries uint64

	// Failures counts listener invocations that errored or panicked.
	Failures uint64

	// Sources lists registered sources per topic in delivery order.
	Sources map[Topic][]string
}

// TotalEmitted sums Emitted.
func (s Stats) TotalEmitted() uint64 {
	var total uint64
	for _, n := range s.Emitted {
		total += n
	}
	return total
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Stats{
		Topics:     len(b.listeners),
		Emitted:    make(map[Topic]uint64, len(b.emitted)),
		Deliveries: b.delivered,
		Failures:   b.failures,
		Sources:    make(map[Topic][]string, len(b.listeners)),
	}
	for topic, n := range b.emitted {
		s.Emitted[topic] = n
	}
	for topic, regs := range b.listeners {
		s.Listeners += len(regs)
		for _, reg := range regs {
			s.Sources[topic] = append(s.Sources[topic], reg.source)
		}
	}
	return s
}

// ResetCounters zeroes emission, delivery and failure counters. Registrations
// are kept.
func (b *Bus) ResetCounters() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.emitted = make(map[Topic]uint64)
	b.delivered = 0
	b.failures = 0
}
