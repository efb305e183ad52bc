package main

import (
	"context"
	"time"

	"boardid-go/services/hal"
	"boardid-go/services/hal/setups"
	"boardid-go/x/fmtx"
)

func main() {
	// Give the USB/UART adapter time to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	plan, ok := setups.Selected()
	board, err := open(plan, ok, hal.Default(plan))
	if err != nil {
		// Without the panel or EEPROM there is nothing useful left to do.
		for {
			println("[main] hal open failed:", err.Error())
			time.Sleep(5 * time.Second)
		}
	}

	ctx := context.Background()
	p := board.Provisioner()
	out := p.Setup(ctx)
	if out.Err != nil {
		println("[main] setup:", out.Err.Error())
		fmtx.Printf("[main] setup: %s\n", out.Err.Error())
	}
	_ = p.Report(ctx, out)
}

// open brings up the board and points fmtx at its console, so diagnostics
// reach the operator's serial link as well as USB stdio.
func open(plan setups.Plan, overrideOK bool, f hal.Factories) (*hal.Board, error) {
	board, err := hal.Open(plan, f)
	if err != nil {
		return nil, err
	}
	fmtx.DefaultOutput = board.Console

	if !overrideOK {
		println("[main] ignoring bad BoardIDOverride:", setups.BoardIDOverride)
		fmtx.Printf("[main] ignoring bad BoardIDOverride: %s\n", setups.BoardIDOverride)
	}
	println("[main] setup", plan.Name, "board id", plan.BoardID.String())
	fmtx.Printf("[main] setup %s, board id %s\n", plan.Name, plan.BoardID.String())
	return board, nil
}
