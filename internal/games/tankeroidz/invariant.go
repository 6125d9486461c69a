package tankeroidz

import "fmt"

// invariant checks a condition that valid play can never break. It returns ok
// so callers can bail out of the operation. Build with -tags tankdebug to
// panic instead of logging.
func (r *Round) invariant(ok bool, format string, args ...any) bool {
	if ok {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if debugInvariants {
		panic("tankeroidz: invariant violated: " + msg)
	}
	r.violations++
	r.log.Warn("invariant violated, operation skipped", "tick", r.tick, "detail", msg)
	return false
}
