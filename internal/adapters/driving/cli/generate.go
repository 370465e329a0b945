package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
)

var (
	generateFrom   string
	generateOutput string
	generateTags   []string
	generateMeta   []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [file.pdf]",
	Short: "Render a tagged PDF",
	Long: `Tag a PDF (or load a saved snapshot), apply corrections and render
the tagged document.

Corrections:
  --set INDEX=TAG    Retag the region at INDEX, e.g. --set 3=h2
  --meta FIELD=VALUE Set a metadata field, e.g. --meta title="Annual Report"

Valid tags: ` + strings.Join(domain.AllTags, ", ") + `
Editable fields: ` + editableFieldNames() + `

The output is written to --output, or to output.dir/output.filename
from the configuration when not set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFrom, "from", "", "Load a snapshot written by 'tag --out' instead of tagging a file")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Path of the generated PDF")
	generateCmd.Flags().StringArrayVar(&generateTags, "set", nil, "Retag a region (INDEX=TAG, repeatable)")
	generateCmd.Flags().StringArrayVar(&generateMeta, "meta", nil, "Set a metadata field (FIELD=VALUE, repeatable)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errNotConfigured
	}
	ctx := commandContext(cmd)

	switch {
	case generateFrom != "" && len(args) > 0:
		return errors.New("use either a file argument or --from, not both")
	case generateFrom != "":
		snapshot, err := readSnapshot(generateFrom)
		if err != nil {
			return err
		}
		if err := sessionService.Load(snapshot); err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
	case len(args) == 1:
		file, err := readSource(args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Tagging %s...\n", file.Name)
		if _, err := sessionService.Upload(ctx, file); err != nil {
			return fmt.Errorf("tagging %s: %w", file.Name, err)
		}
	default:
		return errors.New("a PDF file or --from snapshot is required")
	}

	if err := applyTagEdits(generateTags); err != nil {
		return err
	}
	if err := applyMetadataEdits(generateMeta); err != nil {
		return err
	}

	output, err := outputPath()
	if err != nil {
		return err
	}

	snapshot, ok := sessionService.Snapshot()
	if !ok {
		return domain.ErrNoSession
	}

	gen := sessionService.Generation()
	cmd.Println("Generating PDF...")
	state, err := gen.Generate(ctx, snapshot)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	written, err := writeArtifact(output, gen.WriteArtifact)
	if err != nil {
		return err
	}

	cmd.Printf("Wrote %s (%d bytes", output, written)
	if state.Artifact != nil && state.Artifact.PageCount > 0 {
		cmd.Printf(", %d pages", state.Artifact.PageCount)
	}
	cmd.Println(")")
	return nil
}

// applyTagEdits retags regions through the region editor.
func applyTagEdits(edits []string) error {
	if len(edits) == 0 {
		return nil
	}
	editor := services.NewRegionTagEditor(sessionService)
	for _, edit := range edits {
		index, tag, err := parseTagEdit(edit)
		if err != nil {
			return err
		}
		if err := editor.Begin(index); err != nil {
			return fmt.Errorf("region %d: %w", index, err)
		}
		if err := editor.Select(tag); err != nil {
			editor.Cancel()
			return fmt.Errorf("region %d: %w", index, err)
		}
		if err := editor.Confirm(); err != nil {
			return fmt.Errorf("region %d: %w", index, err)
		}
	}
	return nil
}

// applyMetadataEdits commits all metadata changes as one draft.
func applyMetadataEdits(edits []string) error {
	if len(edits) == 0 {
		return nil
	}
	editor := services.NewMetadataEditor(sessionService)
	if err := editor.Begin(); err != nil {
		return err
	}
	for _, edit := range edits {
		key, value, ok := strings.Cut(edit, "=")
		if !ok {
			editor.Cancel()
			return fmt.Errorf("%w: metadata edit %q must be FIELD=VALUE", domain.ErrInvalidInput, edit)
		}
		field := domain.MetadataField(strings.ToLower(strings.TrimSpace(key)))
		if err := editor.Set(field, value); err != nil {
			editor.Cancel()
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return editor.Confirm()
}

func parseTagEdit(edit string) (int, string, error) {
	raw, tag, ok := strings.Cut(edit, "=")
	if !ok {
		return 0, "", fmt.Errorf("%w: region edit %q must be INDEX=TAG", domain.ErrInvalidInput, edit)
	}
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, "", fmt.Errorf("%w: region index %q", domain.ErrInvalidInput, raw)
	}
	return index, strings.TrimSpace(tag), nil
}

// outputPath resolves --output against the configured defaults.
func outputPath() (string, error) {
	if generateOutput != "" {
		return generateOutput, nil
	}
	if settingsService == nil {
		return domain.DefaultOutputFilename, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return filepath.Join(settings.OutputDir, settings.OutputFilename), nil
}

// writeArtifact creates path and fills it with write. A partial file is
// removed on failure.
func writeArtifact(path string, write func(io.Writer) (int64, error)) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating output: %w", err)
	}
	n, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return n, nil
}

func editableFieldNames() string {
	names := make([]string, len(domain.EditableFields))
	for i, f := range domain.EditableFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
