package cms

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleRichText = `[
  {"type":"heading","level":2,"children":[{"type":"text","text":"Our story"}]},
  {"type":"paragraph","children":[{"type":"text","text":"We build "},{"type":"text","text":"brands","bold":true},{"type":"text","text":"."}]},
  {"type":"list","format":"unordered","children":[
    {"type":"list-item","children":[{"type":"text","text":"Strategy"}]},
    {"type":"list-item","children":[{"type":"link","url":"/services","children":[{"type":"text","text":"Design"}]}]}
  ]},
  {"type":"paragraph","children":[]}
]`

func decodeRichText(t *testing.T, raw string) RichText {
	t.Helper()
	var rt RichText
	if err := json.Unmarshal([]byte(raw), &rt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return rt
}

func TestExtractText(t *testing.T) {
	rt := decodeRichText(t, sampleRichText)
	want := "Our story\nWe build brands.\nStrategy\nDesign"
	if got := ExtractText(rt); got != want {
		t.Fatalf("ExtractText() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"Our story", "We build brands."}, ExtractParagraphs(rt)); diff != "" {
		t.Errorf("ExtractParagraphs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Strategy", "Design"}, ExtractListItems(rt)); diff != "" {
		t.Errorf("ExtractListItems mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTextIsIdempotentOnSingleParagraph(t *testing.T) {
	inputs := []string{
		`"Plain copy from a text field"`,
		`[{"type":"paragraph","children":[{"type":"text","text":"One "},{"type":"text","text":"paragraph"}]}]`,
		`[]`,
	}
	for _, raw := range inputs {
		rt := decodeRichText(t, raw)
		once := ExtractText(rt)
		twice := ExtractText(Plain(once))
		if once != twice {
			t.Errorf("not idempotent for %s: %q then %q", raw, once, twice)
		}
	}
}

func TestRichTextToleratesUnexpectedShapes(t *testing.T) {
	for _, raw := range []string{`null`, `42`, `true`, `[1,2]`, `{"type":"paragraph","children":[{"type":"text","text":"x"}]}`} {
		var rt RichText
		if err := json.Unmarshal([]byte(raw), &rt); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		_ = ExtractText(rt)
	}
	var doc struct {
		Body RichText `json:"body"`
	}
	if err := json.Unmarshal([]byte(`{"body":{"type":"paragraph","children":[{"type":"text","text":"x"}]}}`), &doc); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if got := doc.Body.String(); got != "x" {
		t.Fatalf("expected single node to decode, got %q", got)
	}
}

func TestFindBlock(t *testing.T) {
	var doc Document
	raw := `{"title":"Home","blocks":[
		{"__component":"sections.hero","id":1,"title":"First"},
		{"__component":"sections.stats","id":2},
		{"__component":"sections.hero","id":3,"title":"Second"}
	]}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	b, ok := FindBlock(doc.Blocks, "sections.hero")
	if !ok || b.ID != "1" {
		t.Fatalf("expected first hero, got %+v ok=%v", b, ok)
	}
	b, ok = FindBlock(doc.Blocks, "hero")
	if !ok || b.ID != "1" {
		t.Fatalf("expected short tag to match, got %+v ok=%v", b, ok)
	}
	if _, ok := FindBlock(doc.Blocks, "other.hero"); ok {
		t.Fatal("category mismatch must not match")
	}
	if _, ok := FindBlock(nil, "hero"); ok {
		t.Fatal("nil blocks must not match")
	}
	if got := len(FindBlocks(doc.Blocks, "hero")); got != 2 {
		t.Fatalf("expected 2 hero blocks, got %d", got)
	}

	var props struct {
		Title string `json:"title"`
	}
	if err := b.Decode(&props); err != nil || props.Title != "First" {
		t.Fatalf("decode props: %v %+v", err, props)
	}
}

func TestDocumentAcceptsSections(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"sections":[{"__component":"sections.cta"}]}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Component != "sections.cta" {
		t.Fatalf("expected sections to populate blocks, got %+v", doc.Blocks)
	}
}

func TestBlockRoundTripKeepsComponent(t *testing.T) {
	b := NewBlock("sections.cta", map[string]string{"title": "Talk to us"})
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Block
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Component != "sections.cta" {
		t.Fatalf("component lost: %q", back.Component)
	}
}

func TestMediaVariants(t *testing.T) {
	var m Media
	raw := `{"url":"/uploads/orig.jpg","width":2000,"height":1000,"formats":{
		"small":{"url":"/uploads/small.jpg","width":500},
		"large":{"url":"/uploads/large.jpg","width":1000},
		"thumbnail":{"url":"/uploads/thumb.jpg","width":245}
	}}`
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var widths []int
	for _, v := range m.Variants() {
		widths = append(widths, v.Width)
	}
	if diff := cmp.Diff([]int{245, 500, 1000, 2000}, widths); diff != "" {
		t.Fatalf("variants order (-want +got):\n%s", diff)
	}
	if got := m.Variant("medium").URL; got != "/uploads/orig.jpg" {
		t.Fatalf("missing variant should fall back to original, got %s", got)
	}
	var nilMedia *Media
	if !nilMedia.IsZero() || nilMedia.Variants() != nil {
		t.Fatal("nil media must be zero")
	}
}

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
		D FlexString `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":12,"b":"x","c":null,"d":{"k":1}}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != "12" || v.A.Int() != 12 || v.B != "x" || v.C != "" || v.D != "" {
		t.Fatalf("unexpected values: %+v", v)
	}
}
