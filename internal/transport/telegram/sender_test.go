package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type sent struct {
	Text string
	Opts []interface{}
}

type fakeBot struct {
	sent []sent
	err  error
}

func (f *fakeBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sent{Text: what.(string), Opts: opts})
	return &tele.Message{}, nil
}

func TestSender_Markdown(t *testing.T) {
	fb := &fakeBot{}
	s := newSender(fb)

	err := s.sendMarkdown(context.Background(), &tele.User{ID: 1}, "Hi **Alice**", false)
	require.NoError(t, err)

	require.Len(t, fb.sent, 1)
	assert.Equal(t, "Hi <strong>Alice</strong>", fb.sent[0].Text)
	assert.Equal(t, []interface{}{tele.ModeHTML}, fb.sent[0].Opts)
}

func TestSender_SplitsLongReplies(t *testing.T) {
	fb := &fakeBot{}
	s := newSender(fb)

	para := strings.Repeat("word ", 500)
	md := para + "\n\n" + para + "\n\n" + para

	require.NoError(t, s.sendMarkdown(context.Background(), &tele.User{ID: 1}, md, true))

	require.Greater(t, len(fb.sent), 1)
	for _, m := range fb.sent {
		assert.LessOrEqual(t, len(m.Text), maxTelegramMsgLen)
	}
	// only the first chunk is silent
	assert.Contains(t, fb.sent[0].Opts, tele.Silent)
	assert.NotContains(t, fb.sent[1].Opts, tele.Silent)
}

func TestSender_SkipsEmpty(t *testing.T) {
	fb := &fakeBot{}
	require.NoError(t, newSender(fb).sendMarkdown(context.Background(), &tele.User{ID: 1}, "   ", false))
	assert.Empty(t, fb.sent)
}

func TestSender_PlainAndErrors(t *testing.T) {
	fb := &fakeBot{}
	s := newSender(fb)

	require.NoError(t, s.sendPlain(context.Background(), &tele.User{ID: 1}, "⚠ Memory add failed: http 400"))
	require.Len(t, fb.sent, 1)
	assert.Equal(t, []interface{}{tele.Silent}, fb.sent[0].Opts)

	fb.err = errors.New("blocked by user")
	assert.Error(t, s.sendPlain(context.Background(), &tele.User{ID: 1}, "x"))
}
