// Package strconvx provides the strconv subset the firmware uses. Host builds
// forward to strconv; rp2040/rp2350 builds use a small local implementation.
//
// strconvx_test.go is build-neutral; strconvx_mcu_test.go covers the MCU
// parser only. Run both against the MCU code on the host with:
//
//	go test -tags rp2040 ./x/strconvx ./x/fmtx ./types
package strconvx
