package query_test

import (
	"testing"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/query"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("single strong signal", func(t *testing.T) {
		t.Parallel()

		category, confidence := query.Classify("tourist visa", dalil.LanguageEnglish)

		assert.Equal(t, "visa", category)
		assert.InDelta(t, 1.0, confidence, 0.001)
	})

	t.Run("diluted signal lowers confidence", func(t *testing.T) {
		t.Parallel()

		category, confidence := query.Classify("how long does my visa take to process", dalil.LanguageEnglish)

		assert.Equal(t, "visa", category)
		assert.Less(t, confidence, 0.5)
	})

	t.Run("no signal", func(t *testing.T) {
		t.Parallel()

		category, confidence := query.Classify("hello there", dalil.LanguageEnglish)

		assert.Empty(t, category)
		assert.Zero(t, confidence)
	})

	t.Run("arabic query", func(t *testing.T) {
		t.Parallel()

		category, confidence := query.Classify("تجديد تأشيرة زيارة", dalil.LanguageArabic)

		assert.Equal(t, "visa", category)
		assert.Greater(t, confidence, 0.5)
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()

		category, confidence := query.Classify("", dalil.LanguageEnglish)

		assert.Empty(t, category)
		assert.Zero(t, confidence)
	})
}

func TestEntityHints(t *testing.T) {
	t.Parallel()

	t.Run("known alias", func(t *testing.T) {
		t.Parallel()

		hints := query.EntityHints("renew visa through ICP portal", dalil.LanguageEnglish)

		assert.Equal(t, []string{"Federal Authority for Identity and Citizenship"}, hints)
	})

	t.Run("duplicate aliases collapse", func(t *testing.T) {
		t.Parallel()

		hints := query.EntityHints("gdrfa immigration status", dalil.LanguageEnglish)

		assert.Len(t, hints, 1)
	})

	t.Run("no aliases", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, query.EntityHints("tourist visa", dalil.LanguageEnglish))
	})
}
