package service

import "strings"

// URLCooker rewrites stored media paths into addresses the caller can fetch.
// CDN rewriting and URL signing live behind this interface; the core only
// supplies the secure/local flags.
type URLCooker interface {
	CookUrl(rawUrl string, secure, local bool) string
}

// BaseURLCooker prefixes local paths with the configured media base URL.
// Absolute URLs (already cooked, externally hosted) pass through untouched,
// except that secure uploads are forced onto https.
type BaseURLCooker struct {
	baseUrl string
}

func NewBaseURLCooker(baseUrl string) *BaseURLCooker {
	return &BaseURLCooker{baseUrl: strings.TrimSuffix(baseUrl, "/")}
}

func (c *BaseURLCooker) CookUrl(rawUrl string, secure, local bool) string {
	if rawUrl == "" {
		return ""
	}
	if strings.HasPrefix(rawUrl, "http://") || strings.HasPrefix(rawUrl, "https://") {
		if secure && strings.HasPrefix(rawUrl, "http://") {
			return "https://" + strings.TrimPrefix(rawUrl, "http://")
		}
		return rawUrl
	}
	if !local {
		return rawUrl
	}
	return c.baseUrl + "/" + strings.TrimPrefix(rawUrl, "/")
}
