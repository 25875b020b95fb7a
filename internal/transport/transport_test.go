package transport

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "vkbackup/pkg/errors"
	"vkbackup/pkg/logger"
)

type mockRoundTripper struct {
	response *http.Response
	err      error
	request  *http.Request
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.request = req
	return m.response, m.err
}

func TestDoSendsHeadersAndQuery(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := New(time.Second, map[string]string{"User-Agent": "vkbackup-test"}, logger.NewNopLogger())
	c.SetHeader("Authorization", "OAuth t")

	status, body, err := c.Do(http.MethodGet, server.URL+"/v1/disk?fixed=1", url.Values{"path": {"disk:/a b"}}, nil)

	require.Nil(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "vkbackup-test", got.Header.Get("User-Agent"))
	assert.Equal(t, "OAuth t", got.Header.Get("Authorization"))
	assert.Equal(t, "1", got.URL.Query().Get("fixed"))
	assert.Equal(t, "disk:/a b", got.URL.Query().Get("path"))
}

func TestDoNetworkFailure(t *testing.T) {
	rt := &mockRoundTripper{err: errors.New("connection refused")}
	c := NewWithDoer(&http.Client{Transport: rt}, nil, logger.NewNopLogger())

	status, body, err := c.Do(http.MethodGet, "https://example.invalid/", nil, nil)

	require.NotNil(t, err)
	assert.Equal(t, errs.ErrorTypeNetwork, err.Type)
	assert.Zero(t, status)
	assert.Nil(t, body)
}

func TestCallParsesReply(t *testing.T) {
	rt := &mockRoundTripper{response: &http.Response{
		StatusCode: http.StatusCreated,
		Body:       io.NopCloser(strings.NewReader(`{"href":"https://cloud/op/1","method":"GET"}`)),
		Header:     make(http.Header),
	}}
	c := NewWithDoer(&http.Client{Transport: rt}, nil, logger.NewNopLogger())

	env := c.Call(http.MethodPut, "https://cloud/v1/disk/resources", url.Values{"path": {"Test"}}, nil, "href")

	require.True(t, env.Success())
	assert.Equal(t, "https://cloud/op/1", env.Object.String())
	assert.Equal(t, http.MethodPut, rt.request.Method)
}

func TestCallNetworkFailureBecomesEnvelope(t *testing.T) {
	rt := &mockRoundTripper{err: errors.New("timeout")}
	c := NewWithDoer(&http.Client{Transport: rt}, nil, logger.NewNopLogger())

	env := c.Call(http.MethodGet, "https://cloud/v1/disk", nil, nil, "")

	assert.False(t, env.Success())
	assert.True(t, errs.Is(env.Error(), errs.ErrorTypeNetwork))
}

func TestRequestLogsHideToken(t *testing.T) {
	log := logger.NewTestLogger()
	rt := &mockRoundTripper{response: &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Header:     make(http.Header),
	}}
	c := NewWithDoer(&http.Client{Transport: rt}, nil, log)

	c.Do(http.MethodGet, "https://api.vk.com/method/users.get", url.Values{"access_token": {"secret"}, "v": {"5.124"}}, nil)

	assert.Equal(t, "secret", rt.request.URL.Query().Get("access_token"))
	assert.NotContains(t, log.String(), "secret")
}
