package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
)

// TagDocumentInput is the input schema for the tag_document tool.
type TagDocumentInput struct {
	Path string `json:"path" jsonschema:"absolute path of the PDF file to tag"`
}

// SessionInput is the input schema for the get_session tool.
type SessionInput struct{}

// SessionOutput describes the tagged document in the session.
type SessionOutput struct {
	Filename string            `json:"filename"`
	Pages    int               `json:"pages"`
	Regions  []RegionOutput    `json:"regions"`
	Metadata map[string]string `json:"metadata"`
}

// RegionOutput represents a single tagged region.
type RegionOutput struct {
	Index   int        `json:"index"`
	Page    int        `json:"page"`
	Type    string     `json:"type"`
	Tag     string     `json:"tag"`
	Role    string     `json:"role"`
	BBox    [4]float64 `json:"bbox"`
	Content string     `json:"content,omitempty"`
}

// SetRegionTagInput is the input schema for the set_region_tag tool.
type SetRegionTagInput struct {
	Index int    `json:"index" jsonschema:"zero-based index of the region"`
	Tag   string `json:"tag" jsonschema:"new tag, one of the values listed by tagger://tags"`
}

// UpdateMetadataInput is the input schema for the update_metadata tool.
type UpdateMetadataInput struct {
	Fields map[string]string `json:"fields" jsonschema:"metadata fields to set: title, author, subject, keywords, creator, producer"`
}

// GeneratePDFInput is the input schema for the generate_pdf tool.
type GeneratePDFInput struct {
	Output string `json:"output,omitempty" jsonschema:"path to write the tagged PDF (default: configured output location)"`
}

// GeneratePDFOutput is the output schema for the generate_pdf tool.
type GeneratePDFOutput struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
	Pages int    `json:"pages,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tag_document",
		Description: "Send a PDF to the tagging service and start a new session with the result",
	}, s.handleTagDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_session",
		Description: "List the tagged regions and metadata of the current document",
	}, s.handleGetSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_region_tag",
		Description: "Change the tag of one region of the current document",
	}, s.handleSetRegionTag)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_metadata",
		Description: "Set descriptive metadata fields of the current document",
	}, s.handleUpdateMetadata)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_pdf",
		Description: "Render the tagged PDF for the current document and save it",
	}, s.handleGeneratePDF)
}

// handleTagDocument handles the tag_document tool invocation.
func (s *Server) handleTagDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TagDocumentInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	if !strings.EqualFold(filepath.Ext(input.Path), ".pdf") {
		return nil, SessionOutput{}, fmt.Errorf("%w: %s", domain.ErrNotPDF, input.Path)
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, SessionOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	snapshot, err := s.ports.Session.Upload(ctx, domain.SourceFile{
		Name: filepath.Base(input.Path),
		Path: input.Path,
		Data: data,
	})
	if err != nil {
		return nil, SessionOutput{}, err
	}

	return nil, sessionOutput(snapshot), nil
}

// handleGetSession handles the get_session tool invocation.
func (s *Server) handleGetSession(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SessionInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	snapshot, ok := s.ports.Session.Snapshot()
	if !ok {
		return nil, SessionOutput{}, domain.ErrNoSession
	}
	return nil, sessionOutput(snapshot), nil
}

// handleSetRegionTag handles the set_region_tag tool invocation.
func (s *Server) handleSetRegionTag(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SetRegionTagInput,
) (*mcp.CallToolResult, RegionOutput, error) {
	region, err := s.ports.Session.UpdateRegionTag(input.Index, input.Tag)
	if err != nil {
		return nil, RegionOutput{}, err
	}
	return nil, regionOutput(input.Index, region), nil
}

// handleUpdateMetadata handles the update_metadata tool invocation.
// All fields are applied as one edit; an invalid field leaves the
// metadata unchanged. The edit fails with domain.ErrSuperseded when another
// document is tagged while it is applied.
func (s *Server) handleUpdateMetadata(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input UpdateMetadataInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	editor := services.NewMetadataEditor(s.ports.Session)
	if err := editor.Begin(); err != nil {
		return nil, SessionOutput{}, err
	}

	for key, value := range input.Fields {
		field := domain.MetadataField(strings.ToLower(key))
		if err := editor.Set(field, value); err != nil {
			editor.Cancel()
			return nil, SessionOutput{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	if err := editor.Confirm(); err != nil {
		return nil, SessionOutput{}, err
	}

	snapshot, _ := s.ports.Session.Snapshot()
	return nil, sessionOutput(snapshot), nil
}

// handleGeneratePDF handles the generate_pdf tool invocation.
func (s *Server) handleGeneratePDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GeneratePDFInput,
) (*mcp.CallToolResult, GeneratePDFOutput, error) {
	req, err := s.ports.Session.OpenGeneration()
	if err != nil {
		return nil, GeneratePDFOutput{}, err
	}

	gen := s.ports.Session.Generation()
	state, applied := gen.Resolve(ctx, gen.Execute(ctx, req))
	if !applied {
		return nil, GeneratePDFOutput{}, fmt.Errorf("generation %s: %w", req.ID, domain.ErrSuperseded)
	}
	if state.Status == domain.GenerationFailed {
		return nil, GeneratePDFOutput{}, state.Err
	}

	path, err := s.outputPath(input.Output)
	if err != nil {
		return nil, GeneratePDFOutput{}, err
	}

	written, err := writeFile(path, gen.WriteArtifact)
	if err != nil {
		return nil, GeneratePDFOutput{}, err
	}

	output := GeneratePDFOutput{Path: path, Bytes: written}
	if state.Artifact != nil {
		output.Pages = state.Artifact.PageCount
	}
	return nil, output, nil
}

func (s *Server) outputPath(requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if s.ports.Settings == nil {
		return domain.DefaultOutputFilename, nil
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return "", fmt.Errorf("getting settings: %w", err)
	}
	return filepath.Join(settings.OutputDir, settings.OutputFilename), nil
}

func writeFile(path string, write func(io.Writer) (int64, error)) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
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

func sessionOutput(snapshot domain.TagResponse) SessionOutput {
	output := SessionOutput{
		Filename: snapshot.Metadata.Filename,
		Pages:    len(snapshot.Pages),
		Regions:  make([]RegionOutput, len(snapshot.Structure)),
		Metadata: make(map[string]string, len(domain.AllFields)),
	}
	for i, region := range snapshot.Structure {
		output.Regions[i] = regionOutput(i, region)
	}
	for _, f := range domain.AllFields {
		output.Metadata[string(f)] = snapshot.Metadata.Get(f)
	}
	return output
}

func regionOutput(index int, region domain.Region) RegionOutput {
	return RegionOutput{
		Index:   index,
		Page:    region.Page,
		Type:    region.Type,
		Tag:     region.Tag,
		Role:    domain.RoleFor(region.Tag),
		BBox:    region.BBox,
		Content: region.Content,
	}
}
