package goext2

import (
	"time"
)

// ParseTimestamp converts an inode time field (i_atime, i_ctime, i_mtime, i_dtime) to time.Time.
// ext2 stores them as unsigned seconds since 1970-01-01 00:00:00 UTC.
//
// As 0 means "never set" (e.g. i_dtime of a live inode) the value time.Time{} is returned for it,
// so time.Time.IsZero() can be used.
func ParseTimestamp(input uint32) time.Time {
	if input == 0 {
		return time.Time{}
	}

	return time.Unix(int64(input), 0).UTC()
}
