// Package markdown renders Markdown bodies to HTML and loads frontmatter
// annotated pages from a filesystem.
package markdown
