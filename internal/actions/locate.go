package actions

import (
	"fmt"

	"ctxmenu.dev/ctxmenu/internal/config"
	cmerrors "ctxmenu.dev/ctxmenu/internal/errors"
	"ctxmenu.dev/ctxmenu/internal/patch"
	"ctxmenu.dev/ctxmenu/internal/runtime"
	"ctxmenu.dev/ctxmenu/internal/tui"
)

// LocateOptions contains options for the locate command
type LocateOptions struct {
	// Save stores the chosen installation as vscodeInstallPath
	Save bool
}

// LocateAction lists every workbench file found under the candidate roots
func LocateAction(ctx *runtime.Context, opts LocateOptions) error {
	splog := ctx.Splog

	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	roots := ctx.CandidateRoots(cfg)
	found := patch.LocateAll(roots)
	if len(found) == 0 {
		return reportFailure(ctx, cmerrors.NewPathNotFoundError(roots))
	}

	for i, path := range found {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		splog.Info("%s %s", marker, tui.ColorPath(path))
	}

	if !opts.Save {
		return nil
	}

	chosen := found[0]
	if len(found) > 1 && ctx.Prompter != nil && ctx.Prompter.Interactive() {
		chosen, err = ctx.Prompter.Select("Which installation should ctxmenu patch?", found)
		if err != nil {
			return err
		}
	}

	root, ok := patch.RootOf(chosen)
	if !ok {
		return fmt.Errorf("cannot determine the installation root of %s", chosen)
	}
	if err := cfg.Set(config.KeyInstallPath, root); err != nil {
		return err
	}
	if err := cfg.Save(ctx.ConfigPath); err != nil {
		return err
	}
	splog.Success("Saved vscodeInstallPath: %s", tui.ColorPath(root))
	return nil
}
