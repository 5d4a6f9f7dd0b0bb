// Package assets embeds the bundled question bank and syllabus.
package assets

import "embed"

// FS holds assignments/<subject>/*.json and the syllabus document.
//
//go:embed assignments upsc_complete_syllabus.json
var FS embed.FS
