package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	const want = "dQw4w9WgXcQ"
	inputs := []string{
		"dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=42",
	}
	for _, in := range inputs {
		got, err := ExtractVideoID(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestExtractVideoIDIdempotent(t *testing.T) {
	id, err := ExtractVideoID("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	again, err := ExtractVideoID(id)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestExtractVideoIDRejectsGarbage(t *testing.T) {
	inputs := []string{
		"",
		"not a url",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=tooshort",
		"dQw4w9WgXc",   // 10 chars
		"dQw4w9WgXcQQ", // 12 chars
		// 12-char ids inside URLs must be rejected, never truncated to 11
		"https://youtu.be/dQw4w9WgXcQQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQQ?x=1",
		"https://vimeo.com/1234",
	}
	for _, in := range inputs {
		_, err := ExtractVideoID(in)
		assert.ErrorIs(t, err, ErrInvalidVideoRef, "input %q", in)
	}
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg", ThumbnailURL("dQw4w9WgXcQ"))
}
