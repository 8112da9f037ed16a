package initdata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullPayload(t *testing.T) {
	raw := strings.Join([]string{
		"query_id=AAHdF6IQAAAAAN0XohDhrOrc",
		"user=%7B%22id%22%3A279058397%2C%22first_name%22%3A%22John%22%2C%22last_name%22%3A%22Doe%22%2C%22username%22%3A%22johndoe%22%2C%22language_code%22%3A%22en%22%2C%22is_premium%22%3Atrue%7D",
		"chat=%7B%22id%22%3A-100123%2C%22type%22%3A%22supergroup%22%2C%22title%22%3A%22Dev%22%7D",
		"chat_type=supergroup",
		"chat_instance=8428209589180549439",
		"start_param=ref_42",
		"can_send_after=10",
		"auth_date=1700000000",
		"signature=abc",
		"hash=deadbeef",
	}, "&")

	d, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "AAHdF6IQAAAAAN0XohDhrOrc", d.QueryID)
	require.NotNil(t, d.User)
	assert.Equal(t, int64(279058397), d.User.ID)
	assert.Equal(t, "John", d.User.FirstName)
	assert.Equal(t, "Doe", d.User.LastName)
	assert.Equal(t, "johndoe", d.User.Username)
	assert.Equal(t, "en", d.User.LanguageCode)
	assert.True(t, d.User.IsPremium)
	require.NotNil(t, d.Chat)
	assert.Equal(t, int64(-100123), d.Chat.ID)
	assert.Equal(t, "supergroup", d.Chat.Type)
	assert.Equal(t, "Dev", d.Chat.Title)
	assert.Equal(t, "supergroup", d.ChatType)
	assert.Equal(t, "8428209589180549439", d.ChatInstance)
	assert.Equal(t, "ref_42", d.StartParam)
	assert.Equal(t, 10*time.Second, d.CanSendAfter)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), d.AuthDate)
	assert.Equal(t, "abc", d.Signature)
	assert.Equal(t, "deadbeef", d.Hash)
	assert.Nil(t, d.Extra)
}

func TestParse_UnknownFieldsPreserved(t *testing.T) {
	d, err := Parse("auth_date=1700000000&future_field=hello&another=1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"future_field": "hello", "another": "1"}, d.Extra)
}

func TestParse_MalformedFields(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "bad_user_json", raw: "user=%7Bnope&auth_date=1", field: "user"},
		{name: "bad_receiver_json", raw: "receiver=notjson", field: "receiver"},
		{name: "bad_chat_json", raw: "chat=%5B%5D", field: "chat"},
		{name: "non_integer_auth_date", raw: "auth_date=tomorrow", field: "auth_date"},
		{name: "negative_auth_date", raw: "auth_date=-5", field: "auth_date"},
		{name: "non_integer_can_send_after", raw: "can_send_after=soon", field: "can_send_after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.ErrorIs(t, err, ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.field, "error should name the offending field")
		})
	}
}

func TestParse_ReceiverUser(t *testing.T) {
	d, err := Parse("receiver=%7B%22id%22%3A42%2C%22is_bot%22%3Atrue%2C%22first_name%22%3A%22Bot%22%7D&auth_date=1")
	require.NoError(t, err)
	require.NotNil(t, d.Receiver)
	assert.Equal(t, int64(42), d.Receiver.ID)
	assert.True(t, d.Receiver.IsBot)
}

func TestParse_DoesNotAuthenticate(t *testing.T) {
	// Parse is the structuring half only; an absent or wrong hash is fine.
	d, err := Parse("auth_date=1700000000")
	require.NoError(t, err)
	assert.Empty(t, d.Hash)
}

func TestParse_PropagatesDecodeError(t *testing.T) {
	_, err := Parse("user=%ZZ")
	assert.ErrorIs(t, err, ErrMalformedInput)
}
