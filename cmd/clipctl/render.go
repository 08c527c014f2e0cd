package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipdeck/internal/editor"
	"clipdeck/internal/export"
)

var (
	renderScene string
	renderOut   string
	renderURL   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a saved scene to an MP4 file",
	Long: `Submit a scene JSON file to the render service, wait for it to finish
and download the result. Progress is printed to stderr.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderScene, "scene", "", "Scene JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "video.mp4", "Output file")
	renderCmd.Flags().StringVar(&renderURL, "render-url", "", "Render service URL (default RENDER_URL)")
	_ = renderCmd.MarkFlagRequired("scene")
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(renderScene)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	var data editor.SceneData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse scene %s: %w", renderScene, err)
	}
	// round trip through the editor so malformed scenes fail before upload
	scene, err := editor.LoadScene(data)
	if err != nil {
		return err
	}
	snapshot := scene.Snapshot()

	baseURL := renderURL
	var opts []export.Option
	if cfg != nil {
		if baseURL == "" {
			baseURL = cfg.RenderURL
		}
		opts = append(opts,
			export.WithPollInterval(cfg.RenderPollInterval),
			export.WithTimeout(cfg.RenderTimeout),
		)
	}
	if baseURL == "" {
		return fmt.Errorf("no render service URL")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	out, err := os.Create(renderOut)
	if err != nil {
		return err
	}

	client := export.NewClient(baseURL, cmdLogger(), opts...)
	n, err := client.Export(ctx, &snapshot, out, func(p float64) {
		fmt.Fprintf(cmd.ErrOrStderr(), "\rrendering... %3.0f%%", p)
	})
	closeErr := out.Close()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		_ = os.Remove(renderOut)
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", renderOut, n)
	return nil
}
