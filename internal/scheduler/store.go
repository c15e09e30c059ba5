package scheduler

// Store holds pending tasks grouped into buckets by due second.
// It is not safe for concurrent use; Scheduler serializes access.
type Store struct {
	buckets map[int64][]*Task
	dues    dueHeap
	index   map[uint64]int64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		buckets: make(map[int64][]*Task),
		index:   make(map[uint64]int64),
	}
}

// Insert adds task to the bucket for due, creating the bucket if absent.
func (s *Store) Insert(due int64, task *Task) {
	tasks, ok := s.buckets[due]
	if !ok {
		heapPush(&s.dues, due)
	}
	s.buckets[due] = append(tasks, task)
	s.index[task.ID] = due
}

// DueBefore returns every bucket whose due second is <= now, earliest first.
// Buckets are copies; the store is left untouched.
func (s *Store) DueBefore(now int64) []Bucket {
	keys := heapUpTo(s.dues, now)
	if len(keys) == 0 {
		return nil
	}
	out := make([]Bucket, 0, len(keys))
	for _, due := range keys {
		tasks := s.buckets[due]
		out = append(out, Bucket{
			Due:   due,
			Tasks: append([]*Task(nil), tasks...),
		})
	}
	return out
}

// Remove deletes the whole bucket for due.
func (s *Store) Remove(due int64) {
	tasks, ok := s.buckets[due]
	if !ok {
		return
	}
	for _, t := range tasks {
		delete(s.index, t.ID)
	}
	delete(s.buckets, due)
	heapRemoveDue(&s.dues, due)
}

// Cancel removes a single pending task, pruning its bucket if it empties.
func (s *Store) Cancel(id uint64) bool {
	due, ok := s.index[id]
	if !ok {
		return false
	}
	tasks := s.buckets[due]
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i:i], tasks[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	if len(tasks) == 0 {
		delete(s.buckets, due)
		heapRemoveDue(&s.dues, due)
		return true
	}
	s.buckets[due] = tasks
	return true
}

// Len returns the number of pending tasks.
func (s *Store) Len() int {
	return len(s.index)
}

// Buckets returns the number of non-empty buckets.
func (s *Store) Buckets() int {
	return len(s.buckets)
}

// Next returns the earliest due second, if any task is pending.
func (s *Store) Next() (int64, bool) {
	if len(s.dues) == 0 {
		return 0, false
	}
	return s.dues[0], true
}
