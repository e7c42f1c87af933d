package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDescription(t *testing.T) {
	out := RenderDescription("**One owner**\nfull service history")
	assert.Contains(t, out, "<strong>One owner</strong>")
	assert.Contains(t, out, "<br")

	out = RenderDescription(`<script>alert("x")</script>`)
	assert.NotContains(t, out, "<script>")
}
