// Package mcptool exposes docspell's patch-application action as an MCP
// tool, so an external agent can invoke it the same way it would any other
// tool call, adapting the request/apply/respond shape of a file-patching
// tool to the mark3labs/mcp-go server API.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docspell.dev/docspell/patch"
	"docspell.dev/docspell/span"
)

const (
	fixName        = "docspell_fix"
	fixDescription = `
Apply pending docspell suggestions to a file as patches.

Each patch replaces the text at a given line/column span with replacement
text; patches must not overlap. The file is rewritten atomically: on any
error (including an overlap) the original file is left untouched.
`
)

// FixInput is the JSON shape the fix tool accepts.
type FixInput struct {
	Path    string       `json:"path"`
	Patches []PatchInput `json:"patches"`
}

// PatchInput is one patch request, in the tool's wire format.
type PatchInput struct {
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
	Text        string `json:"text"`
}

func (p PatchInput) toPatch() patch.Patch {
	return patch.Patch{
		Kind: patch.PatchReplace,
		Span: span.Span{
			Start: span.LineColumn{Line: p.StartLine, Column: p.StartColumn},
			End:   span.LineColumn{Line: p.EndLine, Column: p.EndColumn},
		},
		Text: p.Text,
	}
}

// Register adds docspell's fix tool to s.
func Register(s *server.MCPServer) {
	tool := mcp.NewTool(fixName,
		mcp.WithDescription(strings.TrimSpace(fixDescription)),
		mcp.WithString("path", mcp.Required(), mcp.Description("path to the file to patch")),
	)
	s.AddTool(tool, handle)
}

func handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var input FixInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing arguments: %v", err)), nil
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %q: %v", input.Path, err)), nil
	}
	lines := strings.Split(string(data), "\n")

	patches := make([]patch.Patch, 0, len(input.Patches))
	for _, p := range input.Patches {
		patches = append(patches, p.toPatch())
	}

	patched, err := patch.ApplyPatches(patches, lines)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("applying patches to %q: %v", input.Path, err)), nil
	}
	if err := patch.WriteFile(input.Path, []byte(patched), 0o644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing %q: %v", input.Path, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("applied %d patch(es) to %s", len(patches), input.Path)), nil
}
