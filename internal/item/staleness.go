package item

import "time"

// RecordExecution stamps the time an inspector was last considered for
// this item. It is called unconditionally after each consideration,
// whether the inspector ran, was skipped, or failed.
func (i *Item) RecordExecution(inspector string, at time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.executions[inspector] = at
	delete(i.fresh, inspector)
}

// LastExecution returns the last recorded consideration time for the
// named inspector.
func (i *Item) LastExecution(inspector string) (time.Time, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	at, ok := i.executions[inspector]
	return at, ok
}

// UpToDate reports whether the named inspector's last consideration
// postdates the item's modification time. Answers are cached until the
// next RecordExecution or Invalidate.
func (i *Item) UpToDate(inspector string) bool {
	i.mu.RLock()
	if cached, ok := i.fresh[inspector]; ok {
		i.mu.RUnlock()
		return cached
	}
	i.mu.RUnlock()

	i.mu.Lock()
	defer i.mu.Unlock()
	at, ok := i.executions[inspector]
	fresh := ok && !at.Before(i.modTime)
	i.fresh[inspector] = fresh
	return fresh
}

// Invalidate records that the item may have changed on disk: the
// modification time advances and every cached staleness answer is
// dropped.
func (i *Item) Invalidate(modTime time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.modTime = modTime
	i.fresh = make(map[string]bool)
}
