package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/better/internal/manifest"
	"github.com/desertthunder/better/internal/shared"
	"github.com/urfave/cli/v3"
)

// ManifestPatch declares the partner scheme and packages in the given manifests.
func (r *Runner) ManifestPatch(ctx context.Context, cmd *cli.Command) error {
	iosPath := cmd.String("ios")
	androidPath := cmd.String("android")
	if iosPath == "" && androidPath == "" {
		return fmt.Errorf("%w: --ios and/or --android", shared.ErrMissingArgument)
	}

	opts := manifest.Options{
		Scheme:          r.config.Linking.Scheme,
		AndroidPackages: r.config.Linking.AndroidPackages,
	}
	if s := cmd.String("scheme"); s != "" {
		opts.Scheme = s
	}
	if pkgs := cmd.StringSlice("package"); len(pkgs) > 0 {
		opts.AndroidPackages = pkgs
	}

	targets := []struct {
		path  string
		patch func([]byte, manifest.Options) ([]byte, bool, error)
	}{
		{iosPath, manifest.PatchInfoPlist},
		{androidPath, manifest.PatchAndroidManifest},
	}

	for _, t := range targets {
		if t.path == "" {
			continue
		}
		changed, err := manifest.PatchFile(t.path, opts, t.patch)
		if err != nil {
			return fmt.Errorf("failed to patch %s: %w", t.path, err)
		}
		if changed {
			r.writePlain("✓ Patched %s\n", t.path)
		} else {
			r.writePlain("  %s already up to date\n", t.path)
		}
	}
	return nil
}
