package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

type mockChatClient struct {
	resp *models.ChatResponse
	err  error
	reqs []models.ChatRequest
}

func (m *mockChatClient) Chat(_ context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	m.reqs = append(m.reqs, req)
	return m.resp, m.err
}

var sess = &common.Session{UserID: "12", Token: "t"}

func TestSend_RecordsExchange(t *testing.T) {
	client := &mockChatClient{resp: &models.ChatResponse{
		Response:     "Your **largest** holding is AAPL.\nConsider diversifying.",
		QuickActions: []string{"Show risk", "Show news"},
	}}
	svc := NewService(client, common.NewSilentLogger())

	reply, err := svc.Send(context.Background(), sess, "  what is my biggest position?  ")
	require.NoError(t, err)

	require.Len(t, client.reqs, 1)
	assert.Equal(t, int64(12), client.reqs[0].UserID)
	assert.True(t, client.reqs[0].ConsentGiven)
	assert.Equal(t, "what is my biggest position?", client.reqs[0].Message)

	assert.False(t, reply.Failed)
	assert.Equal(t, models.ChatRoleBot, reply.Message.Role)
	assert.Contains(t, reply.Message.HTML, "<strong>largest</strong>")
	assert.Contains(t, reply.Message.HTML, "<br")
	assert.Equal(t, []string{"Show risk", "Show news"}, reply.QuickActions)

	tr := svc.Transcript(sess.Key())
	require.Len(t, tr.Messages, 2)
	assert.Equal(t, models.ChatRoleUser, tr.Messages[0].Role)
	assert.Equal(t, []string{"Show risk", "Show news"}, tr.QuickActions)
}

func TestSend_FailureUsesFallbackReply(t *testing.T) {
	svc := NewService(&mockChatClient{err: errors.New("timeout")}, common.NewSilentLogger())

	reply, err := svc.Send(context.Background(), sess, "hello")

	require.NoError(t, err)
	assert.True(t, reply.Failed)
	assert.Equal(t, FallbackReply, reply.Message.Text)
	assert.Len(t, svc.Transcript(sess.Key()).Messages, 2)
}

func TestSend_RawHTMLIsNotRendered(t *testing.T) {
	svc := NewService(&mockChatClient{resp: &models.ChatResponse{Response: "<script>alert(1)</script>"}}, common.NewSilentLogger())

	reply, err := svc.Send(context.Background(), sess, "hi")

	require.NoError(t, err)
	assert.NotContains(t, reply.Message.HTML, "<script>")
}

func TestSend_Validation(t *testing.T) {
	client := &mockChatClient{resp: &models.ChatResponse{}}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.Send(context.Background(), sess, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Send(context.Background(), &common.Session{UserID: "abc", Token: "t"}, "hi")
	assert.Error(t, err)

	_, err = svc.Send(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, common.ErrNoSession)
	assert.Empty(t, client.reqs)
}

func TestTranscript_LimitAndForget(t *testing.T) {
	svc := NewService(&mockChatClient{resp: &models.ChatResponse{Response: "ok"}}, common.NewSilentLogger())
	svc.limit = 4

	for i := 0; i < 5; i++ {
		_, err := svc.Send(context.Background(), sess, "ping")
		require.NoError(t, err)
	}
	assert.Len(t, svc.Transcript(sess.Key()).Messages, 4)

	svc.Forget(sess.Key())
	assert.Empty(t, svc.Transcript(sess.Key()).Messages)
}
