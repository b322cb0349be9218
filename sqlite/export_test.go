package sqlite

import "time"

// SetNowForTest replaces the clock used for updated_at.
func (d *DB) SetNowForTest(now func() time.Time) {
	d.now = now
}
