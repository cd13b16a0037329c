package docmodel

import (
	"testing"

	"docedit-be/pkg/checkbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeBoxes() Document {
	return Document{Paragraphs: []Paragraph{
		{Runs: []Run{{Text: "Item A ", Bold: true}, {Text: "☐"}}},
		{Alignment: AlignCenter, Runs: []Run{{Text: "Item B ☐ Item C ", Color: "FF0000"}, {Text: "☐", FontSize: 12}}},
	}}
}

func TestScanNumbersInDocumentOrder(t *testing.T) {
	occurrences := Scan(threeBoxes())
	require.Len(t, occurrences, 3)
	assert.Equal(t, Occurrence{Ordinal: 0, Paragraph: 0, Run: 1, Offset: 0, Glyph: checkbox.Unchecked}, occurrences[0])
	assert.Equal(t, Occurrence{Ordinal: 1, Paragraph: 1, Run: 0, Offset: 7, Glyph: checkbox.Unchecked}, occurrences[1])
	assert.Equal(t, Occurrence{Ordinal: 2, Paragraph: 1, Run: 1, Offset: 0, Glyph: checkbox.Unchecked}, occurrences[2])
}

func TestReplayFlipsOnlyTheRecordedOrdinal(t *testing.T) {
	original := threeBoxes()
	out, report := Replay(original, map[int]bool{1: true})

	expected := threeBoxes()
	expected.Paragraphs[1].Runs[0].Text = "Item B ☑ Item C "
	assert.Equal(t, expected, out)
	assert.Equal(t, []int{1}, report.Applied)
	assert.Empty(t, report.Missing)

	// input untouched
	assert.Equal(t, threeBoxes(), original)
}

func TestReplaySetsRecordedState(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{{Runs: []Run{{Text: "☑ ☐ ☑"}}}}}
	out, report := Replay(doc, map[int]bool{0: true, 1: true, 2: false, 7: true})

	assert.Equal(t, "☑ ☑ ☐", out.Paragraphs[0].Runs[0].Text)
	assert.Equal(t, []int{1, 2}, report.Applied)
	assert.Equal(t, []int{0}, report.Unchanged)
	assert.Equal(t, []int{7}, report.Missing)
}

func TestReplayEmptyLedgerIsIdentity(t *testing.T) {
	out, report := Replay(threeBoxes(), nil)
	assert.Equal(t, threeBoxes(), out)
	assert.Empty(t, report.Applied)
}

func TestReplayKeepsMultibyteNeighbours(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{{Runs: []Run{{Text: "ü☐é☐"}}}}}
	out, _ := Replay(doc, map[int]bool{1: true})
	assert.Equal(t, "ü☐é☑", out.Paragraphs[0].Runs[0].Text)
}

func TestStatsOf(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{{Runs: []Run{{Text: "☑ a ☐ b ☑ c ☐"}}}}}
	assert.Equal(t, Stats{Total: 4, Checked: 2, Unchecked: 2, Progress: 50}, StatsOf(doc))
	assert.Equal(t, Stats{}, StatsOf(Document{}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(threeBoxes()))
	assert.ErrorIs(t, Validate(Document{}), ErrEmptyDocument)

	bad := threeBoxes()
	bad.Paragraphs[0].Alignment = "diagonal"
	assert.Error(t, Validate(bad))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Item A ☐\nItem B ☐ Item C ☐", threeBoxes().PlainText())
}
