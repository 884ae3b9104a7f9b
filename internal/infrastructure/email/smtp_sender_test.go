package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/backend/internal/infrastructure/config"
)

func testConfig() config.EmailConfig {
	return config.EmailConfig{
		Enabled:  true,
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@example.com",
	}
}

func TestSMTPSender_Send(t *testing.T) {
	t.Run("sends a well-formed message", func(t *testing.T) {
		sender := NewSMTPSender(testConfig(), nil)

		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			assert.NotNil(t, auth)
			return nil
		}

		err := sender.Send(context.Background(), "vendor@example.com", "Product approved", "Organic Tea is live.")

		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "noreply@example.com", gotFrom)
		assert.Equal(t, []string{"vendor@example.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: Product approved\r\n")
		assert.Contains(t, string(gotMsg), "Organic Tea is live.")
	})

	t.Run("skips auth without a username", func(t *testing.T) {
		cfg := testConfig()
		cfg.Username = ""
		sender := NewSMTPSender(cfg, nil)

		sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			assert.Nil(t, auth)
			return nil
		}

		assert.NoError(t, sender.Send(context.Background(), "vendor@example.com", "s", "b"))
	})

	t.Run("wraps transport failures", func(t *testing.T) {
		sender := NewSMTPSender(testConfig(), nil)
		sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			return errors.New("connection refused")
		}

		err := sender.Send(context.Background(), "vendor@example.com", "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vendor@example.com")
	})

	t.Run("honors a cancelled context", func(t *testing.T) {
		sender := NewSMTPSender(testConfig(), nil)
		called := false
		sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			called = true
			return nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := sender.Send(ctx, "vendor@example.com", "s", "b")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestNopSender_Send(t *testing.T) {
	sender := NewNopSender(nil)
	assert.NoError(t, sender.Send(context.Background(), "vendor@example.com", "s", "b"))
}
