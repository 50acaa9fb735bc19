package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleECB = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender>
		<gesmes:name>European Central Bank</gesmes:name>
	</gesmes:Sender>
	<Cube>
		<Cube time='2024-05-17'>
			<Cube currency='USD' rate='1.0866'/>
			<Cube currency='JPY' rate='169.03'/>
			<Cube currency='GBP' rate='0.85773'/>
			<Cube currency='BAD' rate='n/a'/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParseECB(t *testing.T) {
	entries, err := ParseECB(strings.NewReader(sampleECB))
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Currency: "USD", Value: "1.0866"},
		{Currency: "JPY", Value: "169.03"},
		{Currency: "GBP", Value: "0.85773"},
		{Currency: "BAD", Value: "n/a"},
	}, entries)
}

func TestParseECB_FeedsTable(t *testing.T) {
	entries, err := ParseECB(strings.NewReader(sampleECB))
	require.NoError(t, err)

	snap := NewTable("EUR", testLogger()).Refresh(entries)
	assert.Equal(t, 4, snap.Len())
	assert.Equal(t, 1, snap.Skipped())
}

func TestParseECB_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated", body: `<gesmes:Envelope xmlns:gesmes="x"><Cube><Cube time='2024-05-17'>`},
		{name: "wrong root", body: `<html><body>maintenance</body></html>`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseECB(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseECB_NoRates(t *testing.T) {
	entries, err := ParseECB(strings.NewReader(`<Envelope><Cube><Cube time='2024-05-17'></Cube></Cube></Envelope>`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestECBClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(sampleECB))
	}))
	defer srv.Close()

	client := NewECBClient(srv.URL, 5*time.Second, false, testLogger())
	entries, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestECBClient_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewECBClient(srv.URL, 5*time.Second, false, testLogger())
	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestECBClient_Fetch_InsecureTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleECB))
	}))
	defer srv.Close()

	_, err := NewECBClient(srv.URL, 5*time.Second, false, testLogger()).Fetch(context.Background())
	assert.Error(t, err, "self-signed certificate must be rejected by default")

	entries, err := NewECBClient(srv.URL, 5*time.Second, true, testLogger()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestECBClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewECBClient(srv.URL, 50*time.Millisecond, false, testLogger())
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
