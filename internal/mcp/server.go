package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName and ServerVersion identify this server to MCP clients.
const (
	ServerName    = "corpus-reduce"
	ServerVersion = "v0.1.0"
)

// NewServer builds an MCP server with load_document, list_documents, and
// query registered.
func NewServer(h *Handlers) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Instructions: "Use load_document to register documents, then query with one or more topic questions to receive size-bounded super chunks.",
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_document",
		Description: "Chunk and index a raw document's text for later querying.",
	}, h.LoadDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List every document currently loaded, with id, name, and chunk count.",
	}, h.ListDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Run one or more topic questions against loaded documents and return size-bounded super chunks.",
	}, h.Query)

	return server
}

// Serve runs server over stdio until the transport closes or ctx is done.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
