package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"path"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

//go:embed static templates
var assetFS embed.FS

var indexTemplate = template.Must(template.ParseFS(assetFS, "templates/index.html"))

// staticAsset is an embedded file served with a content-hash ETag
type staticAsset struct {
	data        []byte
	contentType string
	etag        string
}

// loadStaticAssets reads every embedded static file and computes its ETag
func loadStaticAssets() (map[string]staticAsset, error) {
	entries, err := fs.ReadDir(assetFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to list static assets: %w", err)
	}

	assets := make(map[string]staticAsset, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		data, err := fs.ReadFile(assetFS, path.Join("static", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read static asset %s: %w", name, err)
		}

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		assets[name] = staticAsset{
			data:        data,
			contentType: contentType,
			etag:        contentETag(data),
		}
	}
	return assets, nil
}

// contentETag returns a strong ETag derived from the xxHash64 of data
func contentETag(data []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// button is one key on the rendered keypad
type button struct {
	Label string
	Key   string
	Class string
}

// keypad lists the buttons in grid order, four columns wide
var keypad = []button{
	{Label: "AC", Key: "AC", Class: "btn-clear span-two"},
	{Label: "DEL", Key: "DEL", Class: "btn-delete"},
	{Label: "÷", Key: "÷", Class: "btn-operator"},

	{Label: "1", Key: "1", Class: "btn-number"},
	{Label: "2", Key: "2", Class: "btn-number"},
	{Label: "3", Key: "3", Class: "btn-number"},
	{Label: "×", Key: "×", Class: "btn-operator"},

	{Label: "4", Key: "4", Class: "btn-number"},
	{Label: "5", Key: "5", Class: "btn-number"},
	{Label: "6", Key: "6", Class: "btn-number"},
	{Label: "+", Key: "+", Class: "btn-operator"},

	{Label: "7", Key: "7", Class: "btn-number"},
	{Label: "8", Key: "8", Class: "btn-number"},
	{Label: "9", Key: "9", Class: "btn-number"},
	{Label: "-", Key: "-", Class: "btn-operator"},

	{Label: ".", Key: ".", Class: "btn-number"},
	{Label: "0", Key: "0", Class: "btn-number"},
	{Label: "=", Key: "=", Class: "btn-equals span-two"},
}

// pageData is the data rendered into the index template
type pageData struct {
	Previous string
	Current  string
	Buttons  []button
}
