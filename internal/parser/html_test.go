package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLParserParse(t *testing.T) {
	p := NewHTMLParser()

	t.Run("strips markup and scripts", func(t *testing.T) {
		html := `<html><head><style>p{color:red}</style></head><body>
			<script>alert("x")</script>
			<p>Hello <b>there</b></p>
			<div>Second line</div>
		</body></html>`

		text, err := p.Parse(html)
		require.NoError(t, err)
		assert.Contains(t, text, "Hello there")
		assert.Contains(t, text, "Second line")
		assert.NotContains(t, text, "alert")
		assert.NotContains(t, text, "color:red")
	})

	t.Run("block elements become line breaks", func(t *testing.T) {
		text, err := p.Parse("<p>one</p><p>two</p>")
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo", text)
	})

	t.Run("empty input", func(t *testing.T) {
		text, err := p.Parse("")
		require.NoError(t, err)
		assert.Equal(t, "", text)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		text, err := p.Parse("<p>a    lot   of\tspace</p>")
		require.NoError(t, err)
		assert.Equal(t, "a lot of space", text)
	})
}

func TestStripQuoted(t *testing.T) {
	t.Run("drops on-wrote history", func(t *testing.T) {
		body := "Sounds good, let's do Tuesday.\n\nOn Mon, Aug 24, 2026 at 9:02 AM Support <help@acme.io> wrote:\n> Sure, when works for you?\n> Thanks"
		assert.Equal(t, "Sounds good, let's do Tuesday.", StripQuoted(body))
	})

	t.Run("drops quoted lines", func(t *testing.T) {
		body := "> old text\nNew answer here\n> more old text"
		assert.Equal(t, "New answer here", StripQuoted(body))
	})

	t.Run("drops original message blocks", func(t *testing.T) {
		body := "Please cancel my demo.\n\n-----Original Message-----\nFrom: help@acme.io\nblah"
		assert.Equal(t, "Please cancel my demo.", StripQuoted(body))
	})

	t.Run("keeps unquoted text untouched", func(t *testing.T) {
		body := "Just one paragraph, nothing quoted."
		assert.Equal(t, body, StripQuoted(body))
	})
}
