package r2sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContentTypeKnownExtensions(t *testing.T) {
	assert.Equal(t, "text/html", ResolveContentType("site/index.html"))
	assert.Equal(t, "image/png", ResolveContentType("img/logo.png"))
	assert.Equal(t, "application/json", ResolveContentType("data/config.json"))
	assert.Equal(t, "application/wasm", ResolveContentType("app/main.wasm"))
}

func TestResolveContentTypeIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "image/jpeg", ResolveContentType("photos/IMG_0001.JPG"))
}

func TestResolveContentTypeUnknownFallsBack(t *testing.T) {
	assert.Equal(t, "application/octet-stream", ResolveContentType("blob.xyz123"))
	assert.Equal(t, "application/octet-stream", ResolveContentType("no-extension"))
}
