package workload

import (
	"fmt"
	"io"
)

// console writes transcript lines and remembers the first write error so
// the workload loops stay readable.
type console struct {
	w   io.Writer
	err error
}

func (c *console) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, args...)
}

func (c *console) println(s string) {
	c.printf("%s\n", s)
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

func pct(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
