package httpshell

import "strings"

var contentTypes = map[string]string{
	"pptx":  "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"docx":  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"zip":   "application/zip",
	"pdf":   "application/pdf",
	"json":  "application/json",
	"xml":   "application/xml",
	"plain": "text/plain",
	"txt":   "text/plain",
	"html":  "text/html",
	"css":   "text/css",
	"png":   "image/png",
	"jpg":   "image/jpg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"svg":   "image/svg+xml",
	"webp":  "image/webp",
	"mp3":   "audio/mp3",
	"wav":   "audio/wav",
	"ogg":   "audio/ogg",
	"mp4":   "video/mp4",
	"mkv":   "video/mkv",
	"webm":  "video/webm",
	"avi":   "video/x-msvideo",
}

// ContentType returns the MIME type registered for ext.
// ext may be a bare token ("json"), a dotted extension (".json") or a dotted
// name ("x.tar.gz"); only the text after the final dot is looked up.
// The boolean is false when there is no mapping, in which case callers
// should leave the Content-Type header out.
func ContentType(ext string) (string, bool) {
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		ext = ext[i+1:]
	}
	ct, ok := contentTypes[ext]
	return ct, ok
}
