package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"podcastctl/internal/config"
	"podcastctl/internal/logging"
	"podcastctl/internal/services"
	"podcastctl/internal/services/podcast"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var artifactName string
	var filePath string
	var dir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "download <podcast-id>",
		Short: "Download the audio, script or metadata of a podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireID(args)
			if err != nil {
				return err
			}
			artifact, ok := podcast.ParseArtifact(artifactName)
			if !ok {
				return services.Wrap(services.ErrValidation, "cli", "download",
					fmt.Sprintf("unknown artifact %q (want audio, script or metadata)", artifactName), nil)
			}
			target, err := downloadTarget(id, artifact, filePath, dir)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("%s already exists (use --overwrite to replace it)", target)
				}
			}
			n, err := downloadTo(cmd.Context(), ctx.newClient(), id, artifact, target)
			if err != nil {
				return err
			}
			ctx.loggerFor("download").Debug("artifact saved",
				logging.String(logging.FieldPodcastID, id),
				logging.String("path", target),
				logging.Any("bytes", n),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s (%d bytes)\n", artifact, target, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artifactName, "artifact", "a", string(podcast.ArtifactAudio), "What to download: audio, script or metadata")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Destination file (defaults to <id>_<artifact> in --dir)")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Destination directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")
	return cmd
}

func downloadTarget(id string, artifact podcast.Artifact, filePath, dir string) (string, error) {
	if path := strings.TrimSpace(filePath); path != "" {
		return config.ExpandPath(path)
	}
	base, err := config.ExpandPath(strings.TrimSpace(dir))
	if err != nil {
		return "", err
	}
	if base == "" {
		base = "."
	}
	return filepath.Join(base, artifact.FileName(id)), nil
}

// downloadTo writes the artifact to a temporary file next to target and
// renames it into place once the transfer completes.
func downloadTo(ctx context.Context, client *podcast.Client, id string, artifact podcast.Artifact, target string) (int64, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := client.Download(ctx, id, artifact, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmpName, target); err != nil {
		return 0, fmt.Errorf("move download into place: %w", err)
	}
	return n, nil
}
