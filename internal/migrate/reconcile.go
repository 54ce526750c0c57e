// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package migrate

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/rafagsiqueira/statemover/internal/tfcli"
)

// ReconcileDestination re-synchronizes the destination's working state
// view with its configured backend after at least one successful move.
//
// The cached working-state pointer under .terraform/ is discarded
// unconditionally and the store re-initialized with a forced copy from
// the now-updated state content, so that subsequent operations on the
// destination see the migrated resources. When the init output signals
// a remote backend, the transient local state file that served as the
// moves' -state-out target is deleted too, so no stray local copy of
// remote-backed state lingers on disk.
//
// The returned kind reports what the init output revealed about the
// destination's backend.
func ReconcileDestination(ctx context.Context, tool tfcli.Tool, fs afero.Fs, destination StateStore) (BackendKind, error) {
	if err := fs.Remove(destination.CachedStatePath()); err != nil && !os.IsNotExist(err) {
		return BackendUnknown, &ReconcileError{Err: err}
	}

	out, err := tool.Init(ctx, destination.Path, tfcli.InitOptions{
		Reconfigure: true,
		ForceCopy:   true,
	})
	if err != nil {
		return BackendUnknown, &ReconcileError{Err: err}
	}

	kind := BackendLocal
	if strings.Contains(out, tfcli.InitSuccessRemoteBackend) {
		kind = BackendRemote
		log.Printf("[INFO] migrate: destination %s uses a remote backend, removing transient local state", destination.Path)
		if err := fs.Remove(destination.StateFilePath()); err != nil && !os.IsNotExist(err) {
			return kind, &ReconcileError{Err: err}
		}
	}

	return kind, nil
}
