package schema

import (
	"embed"
	"io/fs"
)

//go:embed questionnaires/*.yaml
var embeddedQuestionnaires embed.FS

// DefaultName is the file name of the bundled questionnaire.
const DefaultName = "clinic.yaml"

// EmbeddedFS returns the bundled questionnaire documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedQuestionnaires, "questionnaires")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default parses the bundled clinic questionnaire.
func Default() (*Schema, error) {
	return LoadFS(EmbeddedFS(), DefaultName)
}

// MustDefault is Default for callers that treat a broken bundle as fatal.
func MustDefault() *Schema {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}
