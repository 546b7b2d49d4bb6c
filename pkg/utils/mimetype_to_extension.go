package utils

import (
	"path"
	"strings"
)

// mimeTypeToExtension maps common MIME types to their typical file extensions.
var mimeTypeToExtension = map[string]string{
	"application/json": ".json",
	"application/pdf":  ".pdf",
	"application/xml":  ".xml",
	"application/zip":  ".zip",
	"application/gzip": ".gz",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/octet-stream": ".bin",
	"audio/mpeg":               ".mp3",
	"audio/ogg":                ".ogg",
	"audio/wav":                ".wav",
	"image/avif":               ".avif",
	"image/bmp":                ".bmp",
	"image/gif":                ".gif",
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/svg+xml":            ".svg",
	"image/tiff":               ".tif",
	"image/webp":               ".webp",
	"text/css":                 ".css",
	"text/csv":                 ".csv",
	"text/html":                ".html",
	"text/plain":               ".txt",
	"video/mp4":                ".mp4",
	"video/webm":               ".webm",
}

// optimizable lists the raster formats the transcoding service accepts.
var optimizable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// CleanMimeType strips parameters, e.g. "text/plain; charset=utf-8" becomes "text/plain".
func CleanMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

// GetExtensionFromMimeType returns a common file extension for a given MIME type.
// If no specific extension is found, it defaults to ".bin".
func GetExtensionFromMimeType(mimeType string) string {
	if ext, ok := mimeTypeToExtension[CleanMimeType(mimeType)]; ok {
		return ext
	}

	return ".bin"
}

// ExtensionFor prefers the extension of the original file name and falls back to the MIME type.
func ExtensionFor(fileName, mimeType string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if len(ext) > 1 && !strings.ContainsAny(ext, "/\\ ") {
		return ext
	}

	return GetExtensionFromMimeType(mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(CleanMimeType(mimeType), "image/")
}

func IsOptimizable(mimeType string) bool {
	return optimizable[CleanMimeType(mimeType)]
}
