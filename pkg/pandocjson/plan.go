package pandocjson

import (
	"encoding/json"
	"fmt"

	"github.com/quarto-dev/q2-sub003/pkg/reconcile"
)

// wirePlan mirrors reconcile.ReconciliationPlan for JSON transport,
// e.g. the reconcile command's --plan output, read back by the stats
// command.
type wirePlan struct {
	Blocks []wireBlockAlignment `json:"blocks"`
	Stats  reconcile.Stats      `json:"stats"`
}

type wireBlockAlignment struct {
	Tag           string             `json:"tag"`
	OriginalIndex int                `json:"originalIndex,omitempty"`
	ExecutedIndex int                `json:"executedIndex,omitempty"`
	Container     *wireContainerPlan `json:"container,omitempty"`
}

type wireInlineAlignment struct {
	Tag           string                   `json:"tag"`
	OriginalIndex int                      `json:"originalIndex,omitempty"`
	ExecutedIndex int                      `json:"executedIndex,omitempty"`
	Container     *wireInlineContainerPlan `json:"container,omitempty"`
}

type wireContainerPlan struct {
	Blocks []wireBlockAlignment  `json:"blocks,omitempty"`
	Inline []wireInlineAlignment `json:"inline,omitempty"`
	Table  *wireTablePlan        `json:"table,omitempty"`
}

type wireInlineContainerPlan struct {
	Inline []wireInlineAlignment `json:"inline"`
}

type wireTablePlan struct {
	Bodies []wireTableBodyPlan `json:"bodies"`
}

type wireTableBodyPlan struct {
	HeadRows []wireBlockAlignment `json:"headRows,omitempty"`
	BodyRows []wireBlockAlignment `json:"bodyRows,omitempty"`
}

var alignmentTagNames = map[reconcile.AlignmentTag]string{
	reconcile.AlignKeepOriginal:     "keepOriginal",
	reconcile.AlignUseExecuted:      "useExecuted",
	reconcile.AlignRecurseContainer: "recurseContainer",
}

var alignmentTagByName = func() map[string]reconcile.AlignmentTag {
	m := make(map[string]reconcile.AlignmentTag, len(alignmentTagNames))
	for k, v := range alignmentTagNames {
		m[v] = k
	}
	return m
}()

// EncodePlan renders a reconciliation plan as its JSON wire form.
func EncodePlan(plan *reconcile.ReconciliationPlan) ([]byte, error) {
	if plan == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(wirePlan{
		Blocks: encodeBlockAlignments(plan.Blocks),
		Stats:  plan.Stats,
	})
}

// DecodePlan parses a JSON wire-form reconciliation plan.
func DecodePlan(data []byte) (*reconcile.ReconciliationPlan, error) {
	var wp wirePlan
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("pandocjson: decode plan: %w", err)
	}
	blocks, err := decodeBlockAlignments(wp.Blocks)
	if err != nil {
		return nil, err
	}
	return &reconcile.ReconciliationPlan{Blocks: blocks, Stats: wp.Stats}, nil
}

func encodeTag(t reconcile.AlignmentTag) string {
	if name, ok := alignmentTagNames[t]; ok {
		return name
	}
	return "unknown"
}

func decodeTag(name string) (reconcile.AlignmentTag, error) {
	t, ok := alignmentTagByName[name]
	if !ok {
		return 0, fmt.Errorf("pandocjson: unknown alignment tag %q", name)
	}
	return t, nil
}

func encodeBlockAlignments(as []reconcile.BlockAlignment) []wireBlockAlignment {
	out := make([]wireBlockAlignment, len(as))
	for i, a := range as {
		out[i] = wireBlockAlignment{
			Tag: encodeTag(a.Tag), OriginalIndex: a.OriginalIndex, ExecutedIndex: a.ExecutedIndex,
			Container: encodeContainerPlan(a.Container),
		}
	}
	return out
}

func decodeBlockAlignments(ws []wireBlockAlignment) ([]reconcile.BlockAlignment, error) {
	out := make([]reconcile.BlockAlignment, len(ws))
	for i, w := range ws {
		tag, err := decodeTag(w.Tag)
		if err != nil {
			return nil, err
		}
		container, err := decodeContainerPlan(w.Container)
		if err != nil {
			return nil, err
		}
		out[i] = reconcile.BlockAlignment{
			Tag: tag, OriginalIndex: w.OriginalIndex, ExecutedIndex: w.ExecutedIndex, Container: container,
		}
	}
	return out, nil
}

func encodeInlineAlignments(as []reconcile.InlineAlignment) []wireInlineAlignment {
	out := make([]wireInlineAlignment, len(as))
	for i, a := range as {
		out[i] = wireInlineAlignment{
			Tag: encodeTag(a.Tag), OriginalIndex: a.OriginalIndex, ExecutedIndex: a.ExecutedIndex,
			Container: encodeInlineContainerPlan(a.Container),
		}
	}
	return out
}

func decodeInlineAlignments(ws []wireInlineAlignment) ([]reconcile.InlineAlignment, error) {
	out := make([]reconcile.InlineAlignment, len(ws))
	for i, w := range ws {
		tag, err := decodeTag(w.Tag)
		if err != nil {
			return nil, err
		}
		container, err := decodeInlineContainerPlan(w.Container)
		if err != nil {
			return nil, err
		}
		out[i] = reconcile.InlineAlignment{
			Tag: tag, OriginalIndex: w.OriginalIndex, ExecutedIndex: w.ExecutedIndex, Container: container,
		}
	}
	return out, nil
}

func encodeContainerPlan(c *reconcile.ContainerPlan) *wireContainerPlan {
	if c == nil {
		return nil
	}
	return &wireContainerPlan{
		Blocks: encodeBlockAlignments(c.Blocks),
		Inline: encodeInlineAlignments(c.Inline),
		Table:  encodeTablePlan(c.Table),
	}
}

func decodeContainerPlan(w *wireContainerPlan) (*reconcile.ContainerPlan, error) {
	if w == nil {
		return nil, nil
	}
	blocks, err := decodeBlockAlignments(w.Blocks)
	if err != nil {
		return nil, err
	}
	inline, err := decodeInlineAlignments(w.Inline)
	if err != nil {
		return nil, err
	}
	table, err := decodeTablePlan(w.Table)
	if err != nil {
		return nil, err
	}
	return &reconcile.ContainerPlan{Blocks: blocks, Inline: inline, Table: table}, nil
}

func encodeInlineContainerPlan(c *reconcile.InlineContainerPlan) *wireInlineContainerPlan {
	if c == nil {
		return nil
	}
	return &wireInlineContainerPlan{Inline: encodeInlineAlignments(c.Inline)}
}

func decodeInlineContainerPlan(w *wireInlineContainerPlan) (*reconcile.InlineContainerPlan, error) {
	if w == nil {
		return nil, nil
	}
	inline, err := decodeInlineAlignments(w.Inline)
	if err != nil {
		return nil, err
	}
	return &reconcile.InlineContainerPlan{Inline: inline}, nil
}

func encodeTablePlan(t *reconcile.TablePlan) *wireTablePlan {
	if t == nil {
		return nil
	}
	bodies := make([]wireTableBodyPlan, len(t.Bodies))
	for i, b := range t.Bodies {
		bodies[i] = wireTableBodyPlan{
			HeadRows: encodeBlockAlignments(b.HeadRows),
			BodyRows: encodeBlockAlignments(b.BodyRows),
		}
	}
	return &wireTablePlan{Bodies: bodies}
}

func decodeTablePlan(w *wireTablePlan) (*reconcile.TablePlan, error) {
	if w == nil {
		return nil, nil
	}
	bodies := make([]reconcile.TableBodyPlan, len(w.Bodies))
	for i, b := range w.Bodies {
		headRows, err := decodeBlockAlignments(b.HeadRows)
		if err != nil {
			return nil, err
		}
		bodyRows, err := decodeBlockAlignments(b.BodyRows)
		if err != nil {
			return nil, err
		}
		bodies[i] = reconcile.TableBodyPlan{HeadRows: headRows, BodyRows: bodyRows}
	}
	return &reconcile.TablePlan{Bodies: bodies}, nil
}
