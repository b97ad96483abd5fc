package content

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inaudible/internal/models"
	"inaudible/internal/test"
)

func newRepo(c *test.ContentFS) *Repository {
	return NewRepository(c.Fs, c.Root())
}

func slugs(episodes []models.Episode) []string {
	var out []string
	for _, ep := range episodes {
		out = append(out, ep.Slug)
	}
	return out
}

func TestListEpisodesSkipsIncompleteDirectories(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddEpisode(1, "one", "One")
	c.AddEpisode(2, "two", "Two")
	c.AddFile("3", "transcript.es.md", "no meta here")
	c.AddFile("drafts", "notes.txt", "wip")
	c.AddFile("", "README.md", "not a directory")

	episodes, err := newRepo(c).ListEpisodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one"}, slugs(episodes))
}

func TestListEpisodesSortsByNumberDescending(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddMeta("about", map[string]any{"type": "meta", "slug": "about", "title": "About"})
	c.AddEpisode(7, "seven", "Seven")
	c.AddEpisode(66, "sixty-six", "Sixty six")
	c.AddMeta("bonus", map[string]any{"number": 7, "type": "bonus", "slug": "bonus-seven", "title": "Bonus"})
	c.AddEpisode(10, "ten", "Ten")
	c.AddMeta("zzz", map[string]any{"type": "meta", "slug": "zzz", "title": "Last"})

	episodes, err := newRepo(c).ListEpisodes()
	require.NoError(t, err)
	// ties keep directory name order: "7" < "bonus", "about" < "zzz"
	assert.Equal(t, []string{"sixty-six", "ten", "seven", "bonus-seven", "about", "zzz"}, slugs(episodes))
}

func TestListEpisodesEmptyRoot(t *testing.T) {
	c := test.NewContentFS(t)

	episodes, err := newRepo(c).ListEpisodes()
	require.NoError(t, err)
	assert.Empty(t, episodes)
}

func TestListEpisodesMissingRoot(t *testing.T) {
	c := test.NewContentFS(t)

	_, err := NewRepository(c.Fs, "/nowhere").ListEpisodes()
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedContent))
}

func TestFindBySlug(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddFile("7", "meta.json", `{"number":7,"type":"episode","title":"T","slug":"t-slug","youtubeId":"abc123","duration":"45:00"}`)
	c.AddEpisode(8, "other", "Other")
	repo := newRepo(c)

	ep, ok, err := repo.FindBySlug("t-slug")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, ep.Number)
	assert.Equal(t, 7, *ep.Number)
	assert.Equal(t, "abc123", ep.YoutubeID)

	ep, ok, err = repo.FindBySlug("other")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "yt8", ep.YoutubeID)
	exists, err := afero.Exists(c.Fs, "/content/8/meta.json")
	require.NoError(t, err)
	assert.True(t, exists)

	_, ok, err = repo.FindBySlug("T-SLUG")
	require.NoError(t, err)
	assert.False(t, ok, "slug lookup is case-sensitive")

	_, ok, err = repo.FindBySlug("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindBySlugDuplicateReturnsFirstInSortedOrder(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddEpisode(3, "dup", "Older")
	c.AddEpisode(9, "dup", "Newer")

	ep, ok, err := newRepo(c).FindBySlug("dup")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Newer", ep.Title)
}

func TestMalformedMetaDoesNotHideValidEpisodes(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddEpisode(1, "one", "One")
	c.AddFile("2", "meta.json", `{"number":2,"slug":"two"`)
	c.AddEpisode(3, "three", "Three")
	c.AddFile("5", "meta.json", "null")
	c.AddFile("6", "meta.json", ` ["six"] `)
	repo := newRepo(c)

	episodes, err := repo.ListEpisodes()
	assert.Equal(t, []string{"three", "one"}, slugs(episodes))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedContent))

	var paths []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var mce *MalformedContentError
		require.True(t, errors.As(e, &mce))
		paths = append(paths, mce.Path)
	}
	assert.ElementsMatch(t, []string{"/content/2/meta.json", "/content/5/meta.json", "/content/6/meta.json"}, paths)

	// valid slugs still resolve
	ep, ok, err := repo.FindBySlug("one")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "One", ep.Title)

	// the would-be slug of the corrupt entry surfaces the failure
	_, ok, err = repo.FindBySlug("two")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrMalformedContent))
}

func TestGetSegments(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddFile("7", "meta.json", `{"number":7,"type":"episode","title":"T","slug":"t-slug","youtubeId":"abc123","duration":"45:00"}`)
	c.AddFile("7", "transcript.es.json", `[{"start":0,"text":"Hola"},{"start":5.5,"text":"Mundo"}]`)
	repo := newRepo(c)

	segments, ok, err := repo.GetSegments(7, "es")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, segments, 2)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, "Hola", segments[0].Text)
	assert.Equal(t, 5.5, segments[1].Start)
	assert.Equal(t, "Mundo", segments[1].Text)

	_, ok, err = repo.GetSegments(7, "en")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.GetMarkdown(7, "es")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.GetSegments(99, "es")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetSegmentsPreservesFileOrder(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddFile("4", "transcript.en.json", `[{"start":30,"text":"b"},{"start":10,"text":"a"},{"start":10,"duration":2.5,"text":"c"}]`)

	segments, ok, err := newRepo(c).GetSegments(4, "en")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, segments, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{segments[0].Text, segments[1].Text, segments[2].Text})
	require.NotNil(t, segments[2].Duration)
	assert.Equal(t, 2.5, *segments[2].Duration)
}

func TestGetSegmentsMalformed(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddFile("4", "transcript.es.json", `[{"start":0,"text":"Hola"`)
	c.AddFile("4", "transcript.en.json", `{"start":0,"text":"not an array"}`)
	c.AddFile("4", "transcript.pt.json", `null`)
	c.AddFile("4", "transcript.fr.json", `[]`)
	repo := newRepo(c)

	for _, loc := range []string{"es", "en", "pt"} {
		_, ok, err := repo.GetSegments(4, loc)
		assert.False(t, ok, loc)
		assert.True(t, errors.Is(err, ErrMalformedContent), loc)
	}

	segments, ok, err := repo.GetSegments(4, "fr")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, segments)
}

func TestGetMarkdownVerbatim(t *testing.T) {
	md := "**[0:00]** Hola.\n\n**[0:31]** <not html> ünïcode\n"
	c := test.NewContentFS(t)
	c.AddFile("65", "transcript.es.md", md)

	got, ok, err := newRepo(c).GetMarkdown(65, "es")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, md, got)
}

func TestEditedTranscriptExistenceAgreesWithRead(t *testing.T) {
	html := `<section><h2>Intro</h2><script>trusted()</script></section>`
	c := test.NewContentFS(t)
	c.AddFile("66", "transcript.es.html", html)
	c.AddFile("66", "transcript.en.json", `[]`)
	repo := newRepo(c)

	cases := []struct {
		number int
		loc    string
	}{
		{66, "es"}, {66, "en"}, {65, "es"}, {66, "../66/transcript.es"},
	}
	for _, tc := range cases {
		got, ok, err := repo.GetEditedHTML(tc.number, tc.loc)
		require.NoError(t, err)
		assert.Equal(t, ok, repo.HasEditedTranscript(tc.number, tc.loc), "%d/%s", tc.number, tc.loc)
		if ok {
			assert.Equal(t, html, got)
		}
	}
	assert.True(t, repo.HasEditedTranscript(66, "es"))
}

func TestInvalidLocaleIsAbsent(t *testing.T) {
	c := test.NewContentFS(t)
	c.AddEpisode(1, "one", "One")
	c.AddFile("1", "transcript.es.json", `[]`)
	repo := newRepo(c)

	for _, loc := range []string{"", "../1/transcript.es", "es/../es", "es.json"} {
		_, ok, err := repo.GetSegments(1, loc)
		assert.NoError(t, err, loc)
		assert.False(t, ok, loc)

		_, ok, err = repo.GetMarkdown(1, loc)
		assert.NoError(t, err, loc)
		assert.False(t, ok, loc)

		assert.False(t, repo.HasEditedTranscript(1, loc), loc)
	}
}
