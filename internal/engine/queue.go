package engine

import "sync"

// WorkQueue is the shared pool of files waiting to be copied. It is filled
// once before the workers start and only ever drained.
type WorkQueue struct {
	mu    sync.Mutex
	files []SourceFile
}

// NewWorkQueue takes ownership of files.
func NewWorkQueue(files []SourceFile) *WorkQueue {
	return &WorkQueue{files: files}
}

// Next pops a file, or returns false once the queue is exhausted. Files
// come out in LIFO order; each one is handed to exactly one caller.
func (q *WorkQueue) Next() (SourceFile, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.files)
	if n == 0 {
		return SourceFile{}, false
	}
	f := q.files[n-1]
	q.files[n-1] = SourceFile{}
	q.files = q.files[:n-1]
	return f, true
}

// Len returns the number of files not yet taken.
func (q *WorkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.files)
}
