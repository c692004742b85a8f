package migration

import (
	"fmt"
	"time"
)

// DateLayout is the date prefix of every migration file name.
const DateLayout = "20060102"

// FileName composes "YYYYMMDDNN - desc.sql".
func FileName(day time.Time, index int, desc string) string {
	return fmt.Sprintf("%s%02d - %s.sql", day.Format(DateLayout), index, desc)
}
