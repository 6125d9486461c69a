//go:build tankdebug

package tankeroidz

// Debug builds stop at the first broken invariant.
const debugInvariants = true
