// Package mailer delivers submission emails.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/toiture-lv/quote-api/internal/config"
	"go.uber.org/zap"
)

const graphScope = "https://graph.microsoft.com/.default"

// Message is one outgoing email. Body is HTML.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a message or returns why it could not
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Graph mailer when mail is enabled, otherwise a mailer that only logs
func New(mailCfg *config.MailConfig, adCfg *config.AzureAdConfig, logger *zap.Logger) (Mailer, error) {
	if !mailCfg.Enabled {
		logger.Warn("Mail delivery disabled, sends will be marked sent without any email leaving the service")
		return &LogMailer{logger: logger}, nil
	}
	if mailCfg.Sender == "" {
		return nil, fmt.Errorf("mail.sender is required when mail is enabled")
	}

	cred, err := azidentity.NewClientSecretCredential(adCfg.TenantId, adCfg.ClientId, adCfg.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph credential: %w", err)
	}
	return NewGraphMailer(cred, mailCfg, logger), nil
}

// GraphMailer sends mail through the Microsoft Graph sendMail endpoint
type GraphMailer struct {
	cred       azcore.TokenCredential
	httpClient *http.Client
	baseURL    string
	sender     string
	logger     *zap.Logger
}

// NewGraphMailer creates a Graph mailer using the given credential
func NewGraphMailer(cred azcore.TokenCredential, cfg *config.MailConfig, logger *zap.Logger) *GraphMailer {
	baseURL := strings.TrimRight(cfg.GraphBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://graph.microsoft.com/v1.0"
	}
	return &GraphMailer{
		cred:       cred,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    baseURL,
		sender:     cfg.Sender,
		logger:     logger,
	}
}

type graphRecipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

type graphSendMailRequest struct {
	Message struct {
		Subject string `json:"subject"`
		Body    struct {
			ContentType string `json:"contentType"`
			Content     string `json:"content"`
		} `json:"body"`
		ToRecipients []graphRecipient `json:"toRecipients"`
	} `json:"message"`
	SaveToSentItems bool `json:"saveToSentItems"`
}

// Send posts the message to Graph. Graph answers 202 on acceptance.
func (m *GraphMailer) Send(ctx context.Context, msg Message) error {
	token, err := m.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{graphScope}})
	if err != nil {
		return fmt.Errorf("failed to acquire Graph token: %w", err)
	}

	var payload graphSendMailRequest
	payload.Message.Subject = msg.Subject
	payload.Message.Body.ContentType = "HTML"
	payload.Message.Body.Content = msg.Body
	var to graphRecipient
	to.EmailAddress.Address = msg.To
	payload.Message.ToRecipients = []graphRecipient{to}
	payload.SaveToSentItems = true

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/sendMail", m.baseURL, url.PathEscape(m.sender))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Graph sendMail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, &errorResp); err == nil && errorResp.Error.Message != "" {
			return fmt.Errorf("graph sendMail failed (%d): %s - %s", resp.StatusCode, errorResp.Error.Code, errorResp.Error.Message)
		}
		return fmt.Errorf("graph sendMail failed with status %d", resp.StatusCode)
	}

	m.logger.Info("Mail sent",
		zap.String("recipient", msg.To),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// LogMailer records messages in the log instead of sending them
type LogMailer struct {
	logger *zap.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Warn("Mail delivery disabled, message not sent",
		zap.String("recipient", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
