package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMeetingLink(t *testing.T) {
	link := GenerateMeetingLink()
	assert.True(t, strings.HasPrefix(link, "https://meet.jit.si/luna-mistica-"))

	room := strings.TrimPrefix(link, "https://meet.jit.si/luna-mistica-")
	assert.Len(t, room, 12)

	// Room names are random; two links never collide in practice.
	assert.NotEqual(t, link, GenerateMeetingLink())
}
