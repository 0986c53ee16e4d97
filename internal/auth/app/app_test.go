package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hibritu/hirehub/pkg/slogx"
)

func TestInitMail(t *testing.T) {
	t.Run("refuses log sender outside dev", func(t *testing.T) {
		a := &Application{cfg: Config{Env: "prod"}, logger: slogx.Nop()}
		err := a.initMail()
		require.ErrorContains(t, err, "SMTP_HOST is required")
		require.Nil(t, a.dispatcher)
	})

	t.Run("dev logs mail", func(t *testing.T) {
		a := &Application{cfg: Config{Env: "dev"}, logger: slogx.Nop()}
		require.NoError(t, a.initMail())
		require.NotNil(t, a.dispatcher)
		require.NotNil(t, a.templates)
	})

	t.Run("smtp when configured", func(t *testing.T) {
		a := &Application{
			cfg:    Config{Env: "prod", SMTP: SMTPConfig{Host: "smtp.example.com", Port: 587, From: "HireHub <no-reply@hirehub.local>"}},
			logger: slogx.Nop(),
		}
		require.NoError(t, a.initMail())
		require.NotNil(t, a.dispatcher)
	})
}
