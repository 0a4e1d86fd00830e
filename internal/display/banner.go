package display

import (
	"fmt"
	"os"

	"github.com/clipsmith/clipsmith/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if logging.Cyan != "" {
		fmt.Fprint(os.Stdout, logging.Cyan)
	}
	fmt.Fprint(os.Stdout, `  ____ _ _                     _ _   _
 / ___| (_)_ __  ___ _ __ ___ (_) |_| |__
| |   | | | '_ \/ __| '_ ` + "`" + ` _ \| | __| '_ \
| |___| | | |_) \__ \ | | | | | | |_| | | |
 \____|_|_| .__/|___/_| |_| |_|_|\__|_| |_|
          |_|
`)
	if logging.Cyan != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
