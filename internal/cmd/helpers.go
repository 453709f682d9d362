package cmd

import (
	"fmt"
	"os"

	"github.com/adamancini/foxup/internal/lifecycle"
)

// newManager builds a lifecycle manager from the effective configuration.
func newManager() *lifecycle.Manager {
	return lifecycle.NewManager(cfg, logger)
}

// requireRoot gates the mutating subcommands on elevated execution.
func requireRoot(operation string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("%s requires root privileges (try: sudo foxup %s)", operation, operation)
	}
	return nil
}
