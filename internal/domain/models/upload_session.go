package models

import "time"

// Replace modes accepted on upload init. Empty means unset: if the target
// path is already occupied the initiator is handed the conflict instead.
const (
	ReplaceModeNone     = ""
	ReplaceModeReplace  = "replace"
	ReplaceModeKeepBoth = "keep-both"
)

// UploadSession is the ephemeral, in-memory state of one in-flight chunked
// upload. A session is addressable only by its creating user and lives until
// it is finalized, cancelled, or reclaimed by the staleness sweep.
type UploadSession struct {
	UploadID    string
	UserID      string
	ProjectID   string
	FileName    string
	FilePath    string
	FileSize    int64
	TotalChunks int
	MimeType    string
	ReplaceMode string
	Description string
	Received    map[int]struct{} // chunk indices durably written to ChunkDir
	ChunkDir    string           // scratch directory exclusively owned by this session
	CreatedAt   time.Time
	UpdatedAt   time.Time // last chunk activity, drives staleness
}

// Complete reports whether every chunk index in [0, TotalChunks) has been
// received.
func (s *UploadSession) Complete() bool {
	return len(s.Received) == s.TotalChunks
}

// MissingChunks returns the indices not yet received, in ascending order.
func (s *UploadSession) MissingChunks() []int {
	var missing []int
	for i := 0; i < s.TotalChunks; i++ {
		if _, ok := s.Received[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing
}
