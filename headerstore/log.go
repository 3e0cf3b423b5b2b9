// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerstore

import "github.com/decred/slog"

// log is the package-level logger, disabled until a caller installs
// one with UseLogger.
var log = slog.Disabled

// UseLogger installs logger as the headerstore package's backend.
func UseLogger(logger slog.Logger) {
	log = logger
}
