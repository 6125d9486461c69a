//go:build !tankdebug

package tankeroidz

// Release builds log a broken invariant and skip the offending operation.
const debugInvariants = false
