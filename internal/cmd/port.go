package cmd

import (
	"errors"
	"fmt"

	"github.com/renato0307/covrun/internal/config"
)

// PortCmd prints the first local TCP port that can currently be bound
type PortCmd struct {
	End   int `help:"Last port to probe (0 = 60000)"`
	Start int `help:"First port to probe (0 = 20000)"`
}

// Run executes the port command
func (p *PortCmd) Run(cli *CLI) error {
	start, end := p.Start, p.End
	if start == 0 {
		start = config.DefaultPortRangeStart
	}
	if end == 0 {
		end = config.DefaultPortRangeEnd
	}
	if start < 1 || end > 65535 || start > end {
		return fmt.Errorf("invalid port range %d-%d", start, end)
	}

	// The port is free now but not reserved
	port, ok := cli.Container.Provisioner.AllocateUnusedPort(start, end)
	if !ok {
		return errors.New("no unused port available")
	}
	fmt.Println(port)
	return nil
}
