package mailer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/mailer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticCredential struct {
	token string
	err   error
}

func (c staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestGraphMailer_Send(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	m := mailer.NewGraphMailer(staticCredential{token: "tok"}, &config.MailConfig{
		Sender: "soumissions@toiture.ca", GraphBaseURL: server.URL, TimeoutSeconds: 5,
	}, zap.NewNop())

	err := m.Send(context.Background(), mailer.Message{To: "client@example.ca", Subject: "Soumission", Body: "<p>Bonjour</p>"})
	require.NoError(t, err)

	assert.Equal(t, "/users/soumissions@toiture.ca/sendMail", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	msg := gotBody["message"].(map[string]any)
	assert.Equal(t, "Soumission", msg["subject"])
	body := msg["body"].(map[string]any)
	assert.Equal(t, "HTML", body["contentType"])
	assert.Equal(t, "<p>Bonjour</p>", body["content"])
	to := msg["toRecipients"].([]any)[0].(map[string]any)["emailAddress"].(map[string]any)
	assert.Equal(t, "client@example.ca", to["address"])
}

func TestGraphMailer_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`))
	}))
	defer server.Close()

	cfg := &config.MailConfig{Sender: "s@toiture.ca", GraphBaseURL: server.URL, TimeoutSeconds: 5}

	err := mailer.NewGraphMailer(staticCredential{token: "tok"}, cfg, zap.NewNop()).
		Send(context.Background(), mailer.Message{To: "c@example.ca"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ErrorAccessDenied")

	err = mailer.NewGraphMailer(staticCredential{err: errors.New("no token")}, cfg, zap.NewNop()).
		Send(context.Background(), mailer.Message{To: "c@example.ca"})
	assert.ErrorContains(t, err, "no token")
}

func TestNew_Disabled(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m, err := mailer.New(&config.MailConfig{Enabled: false}, &config.AzureAdConfig{}, zap.New(core))
	require.NoError(t, err)
	assert.IsType(t, &mailer.LogMailer{}, m)
	assert.Equal(t, 1, logs.FilterMessageSnippet("Mail delivery disabled").Len())

	assert.NoError(t, m.Send(context.Background(), mailer.Message{To: "c@example.ca"}))
	assert.Equal(t, 2, logs.FilterMessageSnippet("Mail delivery disabled").Len())

	_, err = mailer.New(&config.MailConfig{Enabled: true}, &config.AzureAdConfig{}, zap.NewNop())
	assert.Error(t, err)
}
