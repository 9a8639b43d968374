package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/prompt"
)

type fakeCompleter struct {
	out  string
	err  error
	last llm.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.last = req
	return f.out, f.err
}

func TestWriteComplete(t *testing.T) {
	c := &fakeCompleter{out: "Bài báo hoàn chỉnh"}
	w := New(c)

	res, err := w.Write(context.Background(), Request{
		InputMethod:  "topic",
		InputContent: "Giá vàng",
		OutputType:   prompt.OutputComplete,
	})
	require.NoError(t, err)
	assert.Equal(t, &Result{Content: "Bài báo hoàn chỉnh"}, res)

	assert.Equal(t, writeModel, c.last.Model)
	assert.Equal(t, 2500, c.last.MaxTokens)
	assert.Equal(t, float32(0.7), c.last.Temperature)
	assert.Equal(t, float32(0.9), c.last.TopP)
	assert.Equal(t, float32(0.1), c.last.FrequencyPenalty)
	assert.Equal(t, float32(0.1), c.last.PresencePenalty)
	assert.False(t, c.last.JSON)
	assert.Contains(t, c.last.User, "Giá vàng")
}

func TestWriteBothParsesJSON(t *testing.T) {
	c := &fakeCompleter{out: `{"outline": "I. Mở đầu", "article": "Nội dung"}`}
	res, err := New(c).Write(context.Background(), Request{
		InputMethod:  "hottopics",
		InputContent: "AI",
		OutputType:   prompt.OutputBoth,
	})
	require.NoError(t, err)
	assert.Equal(t, "I. Mở đầu", res.Outline)
	assert.Equal(t, "Nội dung", res.Article)
	assert.Empty(t, res.Content)
	assert.Equal(t, 4000, c.last.MaxTokens)
	assert.True(t, c.last.JSON)
}

func TestWriteBothKeepsStructuredOutline(t *testing.T) {
	c := &fakeCompleter{out: `{"outline": {"title": "T"}, "article": "A"}`}
	res, err := New(c).Write(context.Background(), Request{InputMethod: "topic", InputContent: "x", OutputType: prompt.OutputBoth})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "T"}`, res.Outline)
}

func TestWriteBothFallsBackToContent(t *testing.T) {
	c := &fakeCompleter{out: "not json at all"}
	res, err := New(c).Write(context.Background(), Request{InputMethod: "articles", InputContent: "x", OutputType: prompt.OutputBoth})
	require.NoError(t, err)
	assert.Equal(t, &Result{Content: "not json at all"}, res)
}

func TestWriteUnknownMethod(t *testing.T) {
	c := &fakeCompleter{}
	_, err := New(c).Write(context.Background(), Request{InputMethod: "video", InputContent: "x"})
	assert.ErrorIs(t, err, prompt.ErrUnknownMethod)
	assert.Empty(t, c.last.Model)
}

func TestWriteErrors(t *testing.T) {
	_, err := New(nil).Write(context.Background(), Request{InputMethod: "word", InputContent: "x"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	upstream := &llm.StatusError{Provider: "OpenAI", StatusCode: 500}
	_, err = New(&fakeCompleter{err: upstream}).Write(context.Background(), Request{InputMethod: "word", InputContent: "x"})
	var se *llm.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "OpenAI API error: 500", err.Error())
}
