package pandocjson_test

import (
	"testing"

	"github.com/quarto-dev/q2-sub003/pkg/pandocjson"
	"github.com/quarto-dev/q2-sub003/pkg/reconcile"
)

func TestEncodeDecodePlan_RoundTrip(t *testing.T) {
	t.Parallel()

	plan := &reconcile.ReconciliationPlan{
		Blocks: []reconcile.BlockAlignment{
			{Tag: reconcile.AlignKeepOriginal, OriginalIndex: 0, ExecutedIndex: 0},
			{
				Tag:           reconcile.AlignRecurseContainer,
				OriginalIndex: 1,
				ExecutedIndex: 1,
				Container: &reconcile.ContainerPlan{
					Inline: []reconcile.InlineAlignment{
						{Tag: reconcile.AlignKeepOriginal, OriginalIndex: 0, ExecutedIndex: 0},
						{Tag: reconcile.AlignUseExecuted, OriginalIndex: -1, ExecutedIndex: 1},
					},
					Table: &reconcile.TablePlan{
						Bodies: []reconcile.TableBodyPlan{
							{
								HeadRows: []reconcile.BlockAlignment{
									{Tag: reconcile.AlignKeepOriginal, OriginalIndex: 0, ExecutedIndex: 0},
								},
								BodyRows: []reconcile.BlockAlignment{
									{Tag: reconcile.AlignUseExecuted, OriginalIndex: -1, ExecutedIndex: 0},
								},
							},
						},
					},
				},
			},
		},
		Stats: reconcile.Stats{
			BlocksKept:     1,
			BlocksRecursed: 1,
			InlinesKept:    1,
			InlinesReplaced: 1,
		},
	}

	data, err := pandocjson.EncodePlan(plan)
	if err != nil {
		t.Fatalf("EncodePlan: %v", err)
	}

	decoded, err := pandocjson.DecodePlan(data)
	if err != nil {
		t.Fatalf("DecodePlan: %v", err)
	}

	if decoded.Stats != plan.Stats {
		t.Errorf("Stats mismatch: got %+v, want %+v", decoded.Stats, plan.Stats)
	}
	if len(decoded.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(decoded.Blocks))
	}
	if decoded.Blocks[0].Tag != reconcile.AlignKeepOriginal {
		t.Errorf("expected AlignKeepOriginal, got %v", decoded.Blocks[0].Tag)
	}

	recursed := decoded.Blocks[1]
	if recursed.Tag != reconcile.AlignRecurseContainer {
		t.Fatalf("expected AlignRecurseContainer, got %v", recursed.Tag)
	}
	if recursed.Container == nil {
		t.Fatal("expected a non-nil Container")
	}
	if len(recursed.Container.Inline) != 2 {
		t.Fatalf("expected 2 inline alignments, got %d", len(recursed.Container.Inline))
	}
	if recursed.Container.Inline[1].Tag != reconcile.AlignUseExecuted {
		t.Errorf("expected AlignUseExecuted, got %v", recursed.Container.Inline[1].Tag)
	}

	table := recursed.Container.Table
	if table == nil || len(table.Bodies) != 1 {
		t.Fatal("expected a single table body plan")
	}
	if len(table.Bodies[0].HeadRows) != 1 || len(table.Bodies[0].BodyRows) != 1 {
		t.Errorf("unexpected table body row counts: %+v", table.Bodies[0])
	}
	if table.Bodies[0].BodyRows[0].Tag != reconcile.AlignUseExecuted {
		t.Errorf("expected AlignUseExecuted body row, got %v", table.Bodies[0].BodyRows[0].Tag)
	}
}

func TestEncodePlan_Nil(t *testing.T) {
	t.Parallel()

	data, err := pandocjson.EncodePlan(nil)
	if err != nil {
		t.Fatalf("EncodePlan(nil): %v", err)
	}
	if string(data) != "null" {
		t.Errorf("expected JSON null, got %q", data)
	}
}

func TestDecodePlan_UnknownTag(t *testing.T) {
	t.Parallel()

	_, err := pandocjson.DecodePlan([]byte(`{"blocks":[{"tag":"notATag"}],"stats":{}}`))
	if err == nil {
		t.Fatal("expected an error for an unknown alignment tag")
	}
}

func TestDecodePlan_EmptyBlocks(t *testing.T) {
	t.Parallel()

	plan := &reconcile.ReconciliationPlan{Stats: reconcile.Stats{HashCollisions: 2}}

	data, err := pandocjson.EncodePlan(plan)
	if err != nil {
		t.Fatalf("EncodePlan: %v", err)
	}

	decoded, err := pandocjson.DecodePlan(data)
	if err != nil {
		t.Fatalf("DecodePlan: %v", err)
	}
	if len(decoded.Blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(decoded.Blocks))
	}
	if decoded.Stats.HashCollisions != 2 {
		t.Errorf("expected HashCollisions 2, got %d", decoded.Stats.HashCollisions)
	}
}
