package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-applytrack/internal/extract"
	"go-applytrack/internal/stealth"
)

const guestPageHTML = `<html><body>
<a class="topcard__org-name-link" href="/company/acme"> Acme Corp </a>
<h1 class="top-card-layout__title">Backend Engineer</h1>
<span class="topcard__flavor--bullet">Berlin, Germany</span>
<div class="show-more-less-html__markup">Build &amp; ship &lt;code&gt;</div>
</body></html>`

func target(srvURL string) extract.Target {
	return extract.Target{
		URL:       srvURL + "/jobs/view/123/backend-engineer",
		PostingID: "123",
	}
}

func TestExtract_ParsesGuestPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(guestPageHTML))
	}))
	defer srv.Close()

	s := New(time.Second)
	res, err := s.Extract(context.Background(), target(srv.URL))

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", res.Organization)
	assert.Equal(t, "Backend Engineer", res.RoleTitle)
	assert.Equal(t, "Berlin, Germany", res.Location)
	assert.Equal(t, "Build & ship <code>", res.Description, "tags stripped, entities decoded")
	assert.Equal(t, "123", res.PostingID)
}

func TestExtract_RotatesProfilesUntilAccepted(t *testing.T) {
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		agents = append(agents, ua)
		//only the crawler identity gets through
		if !strings.Contains(ua, "Googlebot") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(guestPageHTML))
	}))
	defer srv.Close()

	s := New(time.Second)
	res, err := s.Extract(context.Background(), target(srv.URL))

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", res.Organization)
	assert.Len(t, agents, 3, "desktop and mobile rejected, crawler accepted")
	assert.Equal(t, stealth.DesktopUserAgent, agents[0])
	assert.Equal(t, stealth.MobileUserAgent, agents[1])
	assert.Equal(t, stealth.CrawlerUserAgent, agents[2])
}

func TestExtract_AllProfilesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(time.Second)
	res, err := s.Extract(context.Background(), target(srv.URL))

	assert.Nil(t, res)
	assert.ErrorIs(t, err, extract.ErrAllProfilesFailed)
}

func TestExtract_EmptyPageExhaustsProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	s := New(time.Second)
	_, err := s.Extract(context.Background(), target(srv.URL))

	assert.ErrorIs(t, err, extract.ErrAllProfilesFailed)
}

func TestExtract_JSONFallbackPatterns(t *testing.T) {
	//markup drifted away, but the embedded state blob still has the fields
	page := `<html><body><script>{"companyName":"Blob Inc","title":"Data Engineer","formattedLocation":"Remote"}</script></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := New(time.Second)
	res, err := s.Extract(context.Background(), target(srv.URL))

	assert.NoError(t, err)
	assert.Equal(t, "Blob Inc", res.Organization)
	assert.Equal(t, "Data Engineer", res.RoleTitle)
	assert.Equal(t, "Remote", res.Location)
}
