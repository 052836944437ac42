// Package resource publishes workout templates as MCP resources from a
// storage location: a local directory, an embedded filesystem or any
// other scheme afs understands.
package resource

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	proto "github.com/viant/mcp-protocol/server"
)

// Config locates the template files.
type Config struct {
	BaseURL string
	Options []storage.Option
}

// Templates lists and reads workout template resources.
type Templates struct {
	config *Config
	fs     afs.Service
}

// NewTemplates creates a template resource provider.
func NewTemplates(config *Config) *Templates {
	return &Templates{config: config, fs: afs.New()}
}

// Resources returns one registrable entry per template file.
func (t *Templates) Resources(ctx context.Context) ([]*proto.ResourceEntry, error) {
	objects, err := t.fs.List(ctx, t.config.BaseURL, t.config.Options...)
	if err != nil {
		return nil, err
	}
	var ret []*proto.ResourceEntry
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		mimeType := templateMimeType(object.Name())
		ret = append(ret, &proto.ResourceEntry{
			Metadata: schema.Resource{
				Name:     object.Name(),
				MimeType: &mimeType,
				Uri:      object.URL(),
			},
			Handler: func(ctx context.Context, request *schema.ReadResourceRequest) (*schema.ReadResourceResult, *jsonrpc.Error) {
				return t.Read(ctx, request.Params.Uri)
			},
		})
	}
	return ret, nil
}

// Read returns the template content for a resource URI. Templates are
// authored text, so content is always served as text.
func (t *Templates) Read(ctx context.Context, URI string) (*schema.ReadResourceResult, *jsonrpc.Error) {
	data, err := t.fs.DownloadWithURL(ctx, URI, t.config.Options...)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	mimeType := templateMimeType(URI)
	ret := &schema.ReadResourceResult{}
	ret.Contents = append(ret.Contents, schema.ReadResourceResultContentsElem{
		MimeType: &mimeType,
		Uri:      URI,
		Text:     string(data),
	})
	return ret, nil
}

func templateMimeType(name string) string {
	if mimeType := mime.TypeByExtension(filepath.Ext(name)); mimeType != "" {
		return mimeType
	}
	return "text/plain"
}
