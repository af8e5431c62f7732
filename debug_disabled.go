//go:build !vfuture_debug

package promise

func assertDebug(cond bool, ev debugEvent, detail string) {}
