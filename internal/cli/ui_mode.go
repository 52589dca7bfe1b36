package cli

import "quizdoc/internal/logging"

// isTerminal reports whether a writer is a TTY.
var isTerminal = logging.IsTerminal
