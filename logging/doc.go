// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging configures the process-wide slog logger.

# Setup

Install the default logger once at startup:

	logging.Setup(os.Stderr, slog.LevelInfo)

After that, package-level slog calls go through it:

	slog.Error("database setup failed", "error", err)

# Handler Selection

NewHandler picks the output format:

  - Terminal (checked with go-isatty): slog text handler
  - Anything else (files, pipes, log collectors): slog JSON handler

Both the API server and the setup-database command use Setup.
*/
package logging
