package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inaudible/internal/test"
)

func TestResolveTranscriptPrefersSegments(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddFile("7", "transcript.es.json", `[{"start":0,"text":"Hola"}]`)
	c.AddFile("7", "transcript.es.md", "**[0:00]** Hola")
	c.AddFile("7", "transcript.en.md", "**[0:00]** Hello")
	c.AddFile("7", "transcript.fr.html", "<p>Bonjour</p>")
	repo := newRepo(c)

	tr, err := repo.ResolveTranscript(7, "es")
	require.NoError(t, err)
	assert.Equal(t, TranscriptSegments, tr.Kind)
	assert.Len(t, tr.Segments, 1)
	assert.Empty(t, tr.Markdown)

	tr, err = repo.ResolveTranscript(7, "en")
	require.NoError(t, err)
	assert.Equal(t, TranscriptMarkdown, tr.Kind)
	assert.Equal(t, "**[0:00]** Hello", tr.Markdown)

	// edited HTML is not part of the chain
	tr, err = repo.ResolveTranscript(7, "fr")
	require.NoError(t, err)
	assert.Equal(t, TranscriptNone, tr.Kind)
	assert.False(t, tr.Available())
	assert.Equal(t, "fr", tr.Locale)
}

func TestResolveTranscriptMalformedSegmentsIsAnError(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddFile("7", "transcript.es.json", `[{`)
	c.AddFile("7", "transcript.es.md", "fallback")

	_, err := newRepo(c).ResolveTranscript(7, "es")
	assert.True(t, errors.Is(err, ErrMalformedContent))
}

func TestLocales(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddEpisode(66, "x", "X")
	c.AddFile("66", "transcript.es.json", `[]`)
	c.AddFile("66", "transcript.es.html", `<p></p>`)
	c.AddFile("66", "transcript.en.md", ``)
	c.AddFile("66", "transcript.pt-BR.html", ``)
	c.AddFile("66", "transcript.de.txt", ``)
	c.AddFile("66", "cover.jpg", ``)
	repo := newRepo(c)

	locales, err := repo.Locales(66)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es", "pt-BR"}, locales)

	locales, err = repo.Locales(1)
	require.NoError(t, err)
	assert.Empty(t, locales)
}

func TestEditedSections(t *testing.T) {
	html := `<!DOCTYPE html><html><body>
<header><h1>Title</h1></header>
<section><h2>Introducción</h2><p>...</p></section>
<section><h2>  El   servicio
 a otros </h2></section>
<section><h2></h2></section>
</body></html>`

	titles, err := EditedSections(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Introducción", "El servicio a otros"}, titles)

	titles, err = EditedSections("")
	require.NoError(t, err)
	assert.Empty(t, titles)
}
