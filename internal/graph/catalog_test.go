package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCatalogDigest(t *testing.T) {
	t.Parallel()

	t.Run("Course with prerequisites", func(t *testing.T) {
		t.Parallel()
		digest := FormatCatalogDigest([]CatalogEntry{
			{
				Course:      Course{Code: "CS 210", Title: "Data Structures", Credits: 3, Level: 200},
				PrereqCodes: []string{"CS 101", "MATH 120"},
			},
		})
		assert.Equal(t, "CS 210 - Data Structures | Level 200 | 3 credits | Prereqs: CS 101, MATH 120", digest)
	})

	t.Run("Course without prerequisites", func(t *testing.T) {
		t.Parallel()
		digest := FormatCatalogDigest([]CatalogEntry{
			{Course: Course{Code: "CS 101", Title: "Intro to Programming", Credits: 3, Level: 100}},
		})
		assert.Equal(t, "CS 101 - Intro to Programming | Level 100 | 3 credits | Prereqs: None", digest)
	})

	t.Run("Multiple courses are newline separated", func(t *testing.T) {
		t.Parallel()
		digest := FormatCatalogDigest([]CatalogEntry{
			{Course: Course{Code: "CS 101", Title: "Intro", Credits: 3, Level: 100}},
			{Course: Course{Code: "CS 210", Title: "Data Structures", Credits: 3, Level: 200}, PrereqCodes: []string{"CS 101"}},
		})
		assert.Equal(t,
			"CS 101 - Intro | Level 100 | 3 credits | Prereqs: None\n"+
				"CS 210 - Data Structures | Level 200 | 3 credits | Prereqs: CS 101",
			digest)
	})

	t.Run("Empty catalog", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FormatCatalogDigest(nil))
	})
}
