// Package template renders custom report layouts with pongo2. Context builds
// the data handed to templates so sensitive answers never reach them.
package template
