package store

import "strconv"

// UsageCounterKey holds the installation-wide question count. It is not
// scoped per user.
const UsageCounterKey = "global_search_count"

// UsageCounter tracks how many questions were ever submitted, across all
// users including guests.
type UsageCounter struct {
	kv KV
}

func NewUsageCounter(kv KV) *UsageCounter {
	return &UsageCounter{kv: kv}
}

// Current returns the persisted count; absent or unparsable values read as 0.
func (o *UsageCounter) Current() int {
	raw, ok, err := o.kv.Get(UsageCounterKey)
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Increment adds one to the global count, persists it and returns the new
// value.
func (o *UsageCounter) Increment() (int, error) {
	n := o.Current() + 1
	if err := o.kv.Set(UsageCounterKey, strconv.Itoa(n)); err != nil {
		return n, err
	}
	return n, nil
}
