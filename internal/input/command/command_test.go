package command

import "testing"

func TestCount(t *testing.T) {
	cmd := New(nil, 0)
	if cmd.Count() != 1 {
		t.Errorf("Count with RawCount 0 = %d, want 1", cmd.Count())
	}
	cmd.RawCount = 5
	if cmd.Count() != 5 {
		t.Errorf("Count = %d, want 5", cmd.Count())
	}
}

func TestMergeMotionCounts(t *testing.T) {
	tests := []struct {
		name       string
		cmdCount   int
		motCount   int
		wantCmd    int
		wantMotion int
	}{
		{"no counts stay unspecified", 0, 0, 0, 0},
		{"operator count only", 3, 0, 0, 3},
		{"motion count only", 0, 2, 0, 2},
		{"both multiply", 3, 2, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mot := New(nil, tt.motCount)
			cmd := New(nil, tt.cmdCount)
			cmd.Argument = NewMotionArgument(mot)

			cmd.MergeMotionCounts()

			if cmd.RawCount != tt.wantCmd {
				t.Errorf("operator RawCount = %d, want %d", cmd.RawCount, tt.wantCmd)
			}
			if mot.RawCount != tt.wantMotion {
				t.Errorf("motion RawCount = %d, want %d", mot.RawCount, tt.wantMotion)
			}
		})
	}
}

func TestMergeMotionCountsNoMotion(t *testing.T) {
	cmd := New(nil, 3)
	cmd.MergeMotionCounts()
	if cmd.RawCount != 3 {
		t.Errorf("RawCount = %d, want 3 untouched without a motion argument", cmd.RawCount)
	}

	cmd.Argument = NewCharArgument('x')
	cmd.MergeMotionCounts()
	if cmd.RawCount != 3 {
		t.Errorf("RawCount = %d, want 3 untouched with a char argument", cmd.RawCount)
	}
}

func TestTypeClassification(t *testing.T) {
	reads := []Type{TypeMotion, TypeCopy, TypeReset, TypeSelectRegister, TypeOtherReadonly}
	writes := []Type{TypeInsert, TypeDelete, TypeChange, TypePaste, TypeOtherWritable}

	for _, typ := range reads {
		if !typ.IsRead() || typ.IsWrite() {
			t.Errorf("%v should be read-classified", typ)
		}
	}
	for _, typ := range writes {
		if typ.IsRead() || !typ.IsWrite() {
			t.Errorf("%v should be write-classified", typ)
		}
	}
	if TypeOtherSelfSynchronized.IsRead() || TypeOtherSelfSynchronized.IsWrite() {
		t.Error("self-synchronized is neither read nor write classified")
	}
}

func TestFlagHas(t *testing.T) {
	f := FlagCompleteEx | FlagDuplicableOperator
	if !f.Has(FlagCompleteEx) || !f.Has(FlagDuplicableOperator) {
		t.Error("Has should report contained flags")
	}
	if f.Has(FlagExpectMore) {
		t.Error("Has should not report absent flags")
	}
}
