package archive

// StagingEntry pairs an entry's archive name with the source file backing it.
type StagingEntry struct {
	Name       string
	SourcePath string
}

// StagingList collects the files discovered for one pack operation, in walk
// order. The writer relies on that order to compute header offsets before
// any data byte is written. A StagingList is owned by a single pack
// operation and holds no locks.
type StagingList struct {
	entries []StagingEntry
}

func (l *StagingList) Append(name, sourcePath string) {
	l.entries = append(l.entries, StagingEntry{Name: name, SourcePath: sourcePath})
}

func (l *StagingList) Len() int {
	return len(l.entries)
}

// Entries returns the staged entries in append order.
func (l *StagingList) Entries() []StagingEntry {
	return l.entries
}

// Reset drops all staged entries. The writer calls it once a write attempt
// completes, whether or not the attempt succeeded.
func (l *StagingList) Reset() {
	l.entries = nil
}
