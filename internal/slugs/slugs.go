// Package slugs provides shell-safe slugification for folder-forest
// breadcrumbs rendered by the CLI (e.g. `eaglecoolctl library folder-path
// <id>` — SPEC_FULL.md's domain-stack entry for gosimple/slug).
//
// Folder display names come straight from the host and may contain
// spaces, punctuation, or path-hostile characters; ComponentSlug and
// BreadcrumbSlug normalize a single name or a full parent-to-child chain
// into something safe to print and pipe through a shell.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// ComponentSlug converts a single folder display name into a URL/shell-safe
// slug.
func ComponentSlug(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	return slugged
}

// BreadcrumbSlug slugifies each folder name in a root-to-leaf chain and
// joins them with "/", e.g. ["Top", "Child", "Grandchild"] ->
// "top/child/grandchild".
func BreadcrumbSlug(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = ComponentSlug(name)
	}
	return strings.Join(parts, "/")
}
