// Package http provides the public HTTP adapters of the SEO runtime.
//
// Routes registered by PublicAPI:
//   - Resource pages: /blog/{slug}, /blog/{slug}/{id}, /news/{slug}, /news/{slug}/{id},
//     /classifieds/{slug}, /company/{slug}, /company/{country}/{slug}
//   - Static pages: /, /about, /faq, /contact and the list indexes
//   - Sitemaps: /sitemap.xml, /sitemap-static.xml and one /sitemap-<name>.xml per resource
//   - /robots.txt, /healthz and /metrics when a metrics handler is configured
//
// Host applications can register handlers on their own mux/router as needed.
package http
