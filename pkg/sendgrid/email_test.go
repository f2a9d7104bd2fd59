package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	sendgrid_client "github.com/aaravmahajanofficial/minimal-ecommerce/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

const (
	apiKey    = "SG.test-api-key"
	fromEmail = "orders@example.com"
	fromName  = "Minimal Shop"
)

func newFakeSendGrid(t *testing.T, status int, captured *sendgridV3Payload) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, captured))

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNewEmailService(t *testing.T) {
	service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)

	assert.NotNil(t, service)
	assert.NotNil(t, service.GetSendGridClient())
}

func TestEmailService_Send(t *testing.T) {
	tests := []struct {
		name          string
		msg           *models.EmailMessage
		status        int
		expectedError string
		checkPayload  func(t *testing.T, p sendgridV3Payload)
	}{
		{
			name: "Success - Text and HTML receipt",
			msg: &models.EmailMessage{
				To:          "buyer@example.com",
				Subject:     "Your order receipt",
				Content:     "Total: 50.00",
				HTMLContent: "<p>Total: 50.00</p>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "buyer@example.com", pers.To[0]["email"])
				assert.Empty(t, pers.Cc)
				assert.Equal(t, "Your order receipt", pers.Subject)
				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])

				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "Total: 50.00", p.Content[0].Value)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Text only with CC and BCC",
			msg: &models.EmailMessage{
				To:      "buyer@example.com",
				CC:      []string{"cc1@example.com", "cc2@example.com"},
				BCC:     []string{"audit@example.com"},
				Subject: "Receipt",
				Content: "plain",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				pers := p.Personalizations[0]
				require.Len(t, pers.Cc, 2)
				assert.Equal(t, "cc2@example.com", pers.Cc[1]["email"])
				require.Len(t, pers.Bcc, 1)
				assert.Equal(t, "audit@example.com", pers.Bcc[0]["email"])

				require.Len(t, p.Content, 1)
				assert.Equal(t, "text/plain", p.Content[0].Type)
			},
		},
		{
			name:          "Failure - SendGrid API Error (4xx)",
			msg:           &models.EmailMessage{To: "bad@example.com", Subject: "s", Content: "c"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name:          "Failure - SendGrid API Error (5xx)",
			msg:           &models.EmailMessage{To: "buyer@example.com", Subject: "s", Content: "c"},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var payload sendgridV3Payload
			server := newFakeSendGrid(t, tc.status, &payload)

			service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
			service.GetSendGridClient().Request.BaseURL = server.URL

			err := service.Send(t.Context(), tc.msg)

			if tc.expectedError == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL

		err := service.Send(t.Context(), &models.EmailMessage{To: "buyer@example.com", Subject: "s", Content: "c"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email")
	})
}
