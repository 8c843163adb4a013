// SPDX-License-Identifier: MPL-2.0

// Package benchmark measures the classify, replicate and write pipeline.
//
// The repeat benchmarks report throughput with b.SetBytes, so
//
//	go test -bench . -benchmem ./internal/benchmark
//
// prints MB/s next to each case. They are also the input for a PGO profile:
//
//	go test -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
