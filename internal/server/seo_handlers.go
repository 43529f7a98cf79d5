package server

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RobotsTxt handles GET /robots.txt. Crawlers are welcome everywhere except
// the admin surfaces.
func (s *Server) RobotsTxt(c *fiber.Ctx) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /dashboard\n")
	b.WriteString("Disallow: /api/admin/\n")
	b.WriteString("Allow: /\n")
	if base := s.siteBase(); base != "" {
		fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", base)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(b.String())
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML handles GET /sitemap.xml, listing the landing page and every
// post detail URL.
func (s *Server) SitemapXML(c *fiber.Ctx) error {
	base := s.siteBase()

	urls := []sitemapURL{{Loc: base + "/"}}

	posts, err := s.postService.ListPosts(c.Context(), "", maxPaginationLimit, 0)
	if err != nil {
		return respondServiceError(c, err)
	}
	for _, post := range posts {
		urls = append(urls, sitemapURL{
			Loc:     fmt.Sprintf("%s/api/posts/%d", base, post.ID),
			LastMod: post.UpdatedAt.Format(time.DateOnly),
		})
	}

	out, err := xml.MarshalIndent(sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.SendString(xml.Header + string(out))
}

func (s *Server) siteBase() string {
	return strings.TrimRight(s.config.SiteBaseURL, "/")
}
