// Package web holds the embedded report templates.
package web

import "embed"

// DefaultTemplateName is the template executed when no override is given.
const DefaultTemplateName = "budget-email.html"

//go:embed templates
var Templates embed.FS
