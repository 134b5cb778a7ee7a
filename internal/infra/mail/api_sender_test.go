package mail

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/lead-relay/internal/entity"
)

func apiTestConfig(baseURL string) Config {
	return Config{
		APIKey:     "re_test_key",
		APIBaseURL: baseURL,
		From:       "leads@example.com",
		To:         "crm@example.com",
	}
}

func TestAPISenderSend(t *testing.T) {
	var received apiEmailRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(apiEmailResponse{ID: "email-123"})
	}))
	defer server.Close()

	sender := NewAPISender(apiTestConfig(server.URL))
	lead := &entity.Lead{FirstName: "Jane", LastName: "Doe"}

	err := sender.Send("body text", lead)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer re_test_key", authHeader)
	assert.Equal(t, "ManyChat Leads <leads@example.com>", received.From)
	assert.Equal(t, []string{"crm@example.com"}, received.To)
	assert.Equal(t, "New Lead | Jane Doe", received.Subject)
	assert.Equal(t, "body text", received.Text)
}

func TestAPISenderSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer server.Close()

	sender := NewAPISender(apiTestConfig(server.URL))

	err := sender.Send("body", &entity.Lead{FirstName: "Jane", LastName: "Doe"})

	assert.Error(t, err)
	var deliveryErr *entity.DeliveryError
	assert.ErrorAs(t, err, &deliveryErr)
}

func TestAPISenderSendConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	sender := NewAPISender(apiTestConfig(server.URL))

	err := sender.Send("body", &entity.Lead{FirstName: "Jane", LastName: "Doe"})

	var deliveryErr *entity.DeliveryError
	assert.ErrorAs(t, err, &deliveryErr)
}

func TestAPISenderVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domains", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	sender := NewAPISender(apiTestConfig(server.URL))

	assert.NoError(t, sender.Verify())
}

func TestAPISenderVerifyBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := NewAPISender(apiTestConfig(server.URL))

	assert.Error(t, sender.Verify())
}
