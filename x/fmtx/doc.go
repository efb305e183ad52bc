// Package fmtx is the printf used for console text. Host builds forward to
// fmt; rp2040/rp2350 builds use a small formatter covering %s %v %d %x %X %c
// %t %% with zero-padded widths.
//
// fmtx_test.go is build-neutral and fmtx_mcu_test.go covers the MCU
// formatter's own edges; run both with go test -tags rp2040 ./x/fmtx.
package fmtx
