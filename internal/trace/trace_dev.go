//go:build dev

// Package trace provides runtime tracing for development builds.
//
// Usage:
//
//	go build -tags dev ./cmd/firecomp
//	FIRECOMP_TRACE=trace.out firecomp script commands.yml
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

var (
	traceMu     sync.Mutex
	traceFile   *os.File
	traceActive bool
)

// Init starts tracing when FIRECOMP_TRACE names an output file.
// Returns a cleanup function that should be deferred.
func Init() func() {
	tracePath := os.Getenv("FIRECOMP_TRACE")
	if tracePath == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	f, err := os.Create(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "firecomp: failed to create trace file %s: %v\n", tracePath, err)
		return func() {}
	}

	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "firecomp: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}

	traceFile = f
	traceActive = true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()

		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			_ = traceFile.Close()
			traceFile = nil
		}
	}
}

// Region starts a trace region and returns the function ending it
func Region(ctx context.Context, regionType string) func() {
	if !IsEnabled() {
		return func() {}
	}
	return trace.StartRegion(ctx, regionType).End
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceActive
}
