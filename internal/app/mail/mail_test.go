package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogMailer(t *testing.T) {
	var m Mailer = LogMailer{}
	assert.NoError(t, m.SendLoginCode(context.Background(), "a@b.c", "123456"))
}

func TestNewSendGridMailer(t *testing.T) {
	m := NewSendGridMailer("SG.key", "no-reply@carrot.market")
	assert.Equal(t, "no-reply@carrot.market", m.from.Address)
	assert.Equal(t, senderName, m.from.Name)
}
