package hal

import (
	"testing"

	"boardid-go/services/hal/hostdev"
)

func TestConsole_ReadyLatches(t *testing.T) {
	u := hostdev.NewUART(nil)
	c := NewConsole(u)

	if c.Ready() {
		t.Fatal("no host yet")
	}
	u.Inject([]byte("hello, this is more than sixteen bytes\n"))
	if !c.Ready() {
		t.Fatal("input should open the link")
	}
	if u.Buffered() != 0 {
		t.Fatalf("input not drained: %d left", u.Buffered())
	}
	if !c.Ready() {
		t.Fatal("ready must latch")
	}
}

func TestConsole_Write(t *testing.T) {
	u := hostdev.NewUART(nil)
	c := NewConsole(u)
	if _, err := c.Write([]byte("Board ID: 0x41\n")); err != nil {
		t.Fatal(err)
	}
	if u.Transmitted() != "Board ID: 0x41\n" {
		t.Fatalf("tx = %q", u.Transmitted())
	}
}
