// Package html renders profile pages with html/template.
//
// Every value that comes from the GitHub API (names, bios, descriptions,
// URLs) passes through html/template's contextual escaping, so API text
// is never interpreted as markup.
//
// The page is a tabbed layout: an overview with the profile card and
// paginated repositories, the forks of the current page, and lazily
// loaded followers and following panels. Panels that are still loading
// render as skeleton cards with a data-src attribute naming the fragment
// endpoint that replaces them.
package html
