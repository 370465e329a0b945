package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// maxContentWidth truncates region content in listings.
const maxContentWidth = 48

var (
	tagJSON bool
	tagOut  string
)

var tagCmd = &cobra.Command{
	Use:   "tag [file.pdf]",
	Short: "Tag a PDF and print the result",
	Long: `Send a PDF to the tagging service and print the tagged regions and
document metadata.

Use --out to save the result as a snapshot that 'tagger generate --from'
can render later, or --json to print the raw snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runTag,
}

func init() {
	tagCmd.Flags().BoolVar(&tagJSON, "json", false, "Print the snapshot as JSON")
	tagCmd.Flags().StringVarP(&tagOut, "out", "o", "", "Write the snapshot to a JSON file")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errNotConfigured
	}

	file, err := readSource(args[0])
	if err != nil {
		return err
	}

	snapshot, err := sessionService.Upload(commandContext(cmd), file)
	if err != nil {
		return fmt.Errorf("tagging %s: %w", file.Name, err)
	}

	if tagOut != "" {
		if err := writeSnapshot(tagOut, snapshot); err != nil {
			return err
		}
	}

	if tagJSON {
		return encodeSnapshot(cmd.OutOrStdout(), snapshot)
	}

	printSnapshot(cmd, snapshot)
	if tagOut != "" {
		cmd.Printf("\nSnapshot written to %s\n", tagOut)
	}
	return nil
}

// readSource loads a PDF from disk for upload.
func readSource(path string) (domain.SourceFile, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return domain.SourceFile{}, fmt.Errorf("%w: %s", domain.ErrNotPDF, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return domain.SourceFile{
		Name: filepath.Base(path),
		Path: path,
		Data: data,
	}, nil
}

// readSnapshot loads a snapshot saved with 'tag --out'.
func readSnapshot(path string) (domain.TagResponse, error) {
	var snapshot domain.TagResponse
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("%w: snapshot %s: %v", domain.ErrInvalidInput, path, err)
	}
	return snapshot, nil
}

func writeSnapshot(path string, snapshot domain.TagResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := encodeSnapshot(f, snapshot); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeSnapshot(w io.Writer, snapshot domain.TagResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

func printSnapshot(cmd *cobra.Command, snapshot domain.TagResponse) {
	name := snapshot.Metadata.Filename
	if name == "" {
		name = "(untitled)"
	}
	cmd.Printf("Document: %s (%d pages, %d regions)\n\n", name, len(snapshot.Pages), len(snapshot.Structure))

	if len(snapshot.Structure) == 0 {
		cmd.Println("No regions found.")
	} else {
		cmd.Printf("%4s  %4s  %-8s  %-14s  %-8s  %-28s  %s\n", "#", "Page", "Type", "Tag", "Role", "BBox", "Content")
		for i, region := range snapshot.Structure {
			cmd.Printf("%4d  %4d  %-8s  %-14s  %-8s  %-28s  %s\n",
				i, region.Page, region.Type, region.Tag, domain.RoleFor(region.Tag),
				formatBBox(region.BBox), regionContent(region))
		}
	}

	cmd.Println()
	cmd.Println("Metadata")
	for _, f := range domain.AllFields {
		cmd.Printf("  %-14s %s\n", f.Label()+":", snapshot.Metadata.DisplayValue(f))
	}
}

func formatBBox(b [4]float64) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f, %.1f)", b[0], b[1], b[2], b[3])
}

func regionContent(region domain.Region) string {
	content := strings.Join(strings.Fields(region.Content), " ")
	if content == "" && region.XRef != nil {
		return fmt.Sprintf("[image xref %d]", *region.XRef)
	}
	if utf8.RuneCountInString(content) > maxContentWidth {
		runes := []rune(content)
		content = string(runes[:maxContentWidth-3]) + "..."
	}
	return content
}
