package hal

// Console is the provisioning text channel on a UART. The link counts as
// open once the host has sent anything; from then on Ready stays true.
// Received bytes carry no meaning and are discarded.
type Console struct {
	port  UARTPort
	ready bool
	buf   [16]byte
}

func NewConsole(port UARTPort) *Console { return &Console{port: port} }

func (c *Console) Write(p []byte) (int, error) { return c.port.Write(p) }

// Ready reports whether a host has shown up on the link.
func (c *Console) Ready() bool {
	if c.port.Buffered() > 0 {
		c.ready = true
		c.drain()
	}
	return c.ready
}

func (c *Console) drain() {
	for c.port.Buffered() > 0 {
		n, err := c.port.Read(c.buf[:])
		if n == 0 || err != nil {
			return
		}
	}
}
