package service

import (
	"path/filepath"
	"strings"
)

// Export formats the front end knows how to render previews for.
var extToFormat = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"gif":  "gif",
	"webp": "webp",

	"svg": "svg",
	"pdf": "pdf",

	"html": "html",
	"htm":  "html",

	"json": "json",
	"csv":  "csv",
	"tsv":  "csv",
	"txt":  "text",
}

func FormatForPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "binary"
	}
	ext = strings.TrimPrefix(ext, ".")
	if format, ok := extToFormat[strings.ToLower(ext)]; ok {
		return format
	}
	return "binary"
}
