package checks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokecheck/pkg/suite"
)

const sitemapXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>http://localhost:3002/</loc></url>
  <url><loc>http://localhost:3002/about</loc></url>
</urlset>`

func TestSitemapCheck(t *testing.T) {
	t.Run("sitemap with entries passes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(sitemapXML))
		}))
		defer srv.Close()

		s := suiteFor(srv.URL)
		s.Sitemap = &suite.SitemapProbe{Path: "/sitemap.xml"}

		ok, err := sitemapCheck(context.Background(), s)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty urlset fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?><urlset></urlset>`))
		}))
		defer srv.Close()

		ok, err := sitemapCheck(context.Background(), suiteFor(srv.URL))
		assert.False(t, ok)
		assert.ErrorContains(t, err, "no URL entries")
	})

	t.Run("missing sitemap fails", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		ok, err := sitemapCheck(context.Background(), suiteFor(srv.URL))
		assert.False(t, ok)
		assert.ErrorContains(t, err, "status 404")
	})
}
