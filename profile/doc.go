// Package profile starts optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	kata --pprof-mode cpu render page.tmpl
//	go tool pprof kata ~/.cache/kata/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Start] always returns a no-op
// [Stopper]. With the tag, the net/http/pprof handlers are also registered
// on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
