package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testMetadata(n int) []GpuChunkMetadata {
	md := make([]GpuChunkMetadata, n)
	for i := range md {
		md[i] = GpuChunkMetadata{
			Position:  mgl32.Vec3{float32(i) * 16, 0, 0},
			FirstQuad: uint32(i * 100),
			QuadCount: uint32(i + 1),
		}
	}
	return md
}

func TestBuildDrawCommandsExample(t *testing.T) {
	// N=4 slots, metadata_indices=[5,2]: slot 0 from metadata[5] with
	// instance id 0, slot 1 from metadata[2] with instance id 1, slots
	// 2 and 3 degenerate.
	const n = 4
	metadata := testMetadata(8)
	visible := []uint32{5, 2}

	instances := make([]ChunkInstanceData, n)
	args := make([]IndexedIndirectArgs, n)
	BuildDrawCommands(instances, args, metadata, visible)

	if args[0].IndexCount != metadata[5].QuadCount*IndicesPerQuad {
		t.Fatalf("slot 0 index count: got %d, want %d", args[0].IndexCount, metadata[5].QuadCount*IndicesPerQuad)
	}
	if args[0].FirstInstance != 0 || args[1].FirstInstance != 1 {
		t.Fatalf("first instance must be the slot index: got %d, %d", args[0].FirstInstance, args[1].FirstInstance)
	}
	if instances[0].Position != metadata[5].Position || instances[0].FirstQuad != metadata[5].FirstQuad {
		t.Fatalf("slot 0 instance not derived from metadata[5]: %+v", instances[0])
	}
	if instances[1].FirstQuad != metadata[2].FirstQuad {
		t.Fatalf("slot 1 instance not derived from metadata[2]: %+v", instances[1])
	}
	for i := 2; i < n; i++ {
		if !args[i].Degenerate() {
			t.Fatalf("slot %d should be degenerate: %+v", i, args[i])
		}
		if instances[i] != (ChunkInstanceData{}) {
			t.Fatalf("slot %d instance should be inert: %+v", i, instances[i])
		}
	}
}

func TestBuildDrawCommandsDegenerateInvariant(t *testing.T) {
	metadata := testMetadata(16)
	for _, tc := range []struct{ n, l int }{
		{1, 0}, {4, 4}, {8, 3}, {16, 16}, {16, 0},
	} {
		visible := make([]uint32, tc.l)
		for i := range visible {
			visible[i] = uint32(i)
		}
		instances := make([]ChunkInstanceData, tc.n)
		args := make([]IndexedIndirectArgs, tc.n)
		BuildDrawCommands(instances, args, metadata, visible)

		for i := 0; i < tc.l; i++ {
			if args[i].Degenerate() {
				t.Fatalf("N=%d L=%d: slot %d degenerate", tc.n, tc.l, i)
			}
			if args[i].InstanceCount != 1 {
				t.Fatalf("N=%d L=%d: slot %d instance count %d", tc.n, tc.l, i, args[i].InstanceCount)
			}
			if args[i].FirstInstance != uint32(i) {
				t.Fatalf("N=%d L=%d: slot %d first instance %d", tc.n, tc.l, i, args[i].FirstInstance)
			}
		}
		for i := tc.l; i < tc.n; i++ {
			if !args[i].Degenerate() {
				t.Fatalf("N=%d L=%d: slot %d not degenerate", tc.n, tc.l, i)
			}
		}
	}
}

func TestBuildDrawCommandsShrink(t *testing.T) {
	metadata := testMetadata(8)
	instances := make([]ChunkInstanceData, 8)
	args := make([]IndexedIndirectArgs, 8)

	// Frame 1: five visible chunks.
	BuildDrawCommands(instances, args, metadata, []uint32{0, 1, 2, 3, 4})
	for i := 0; i < 5; i++ {
		if args[i].Degenerate() {
			t.Fatalf("frame 1 slot %d degenerate", i)
		}
	}

	// Frame 2: two visible. Slots 2..4 must not keep stale draws.
	BuildDrawCommands(instances, args, metadata, []uint32{7, 6})
	for i := 2; i < 8; i++ {
		if !args[i].Degenerate() {
			t.Fatalf("frame 2 slot %d holds a stale draw: %+v", i, args[i])
		}
	}
	if instances[0].FirstQuad != metadata[7].FirstQuad {
		t.Fatalf("frame 2 slot 0 not rebuilt: %+v", instances[0])
	}
}

func TestBuildDrawCommandsOutOfRangeMetadataIndex(t *testing.T) {
	metadata := testMetadata(2)
	instances := make([]ChunkInstanceData, 4)
	args := make([]IndexedIndirectArgs, 4)

	BuildDrawCommands(instances, args, metadata, []uint32{1, 99, 0})

	if args[0].Degenerate() || args[2].Degenerate() {
		t.Fatal("in-range slots must be live")
	}
	if !args[1].Degenerate() {
		t.Fatalf("slot with out-of-range metadata index must stay degenerate: %+v", args[1])
	}
	if args[2].FirstInstance != 2 {
		t.Fatalf("slot 2 first instance: got %d, want 2", args[2].FirstInstance)
	}
}

func TestBuildDrawCommandsEmptyVisible(t *testing.T) {
	instances := make([]ChunkInstanceData, 4)
	args := make([]IndexedIndirectArgs, 4)
	// Dirty the buffers first.
	for i := range args {
		args[i].IndexCount = 99
		instances[i].FirstQuad = 7
	}

	BuildDrawCommands(instances, args, testMetadata(4), nil)

	for i := range args {
		if !args[i].Degenerate() {
			t.Fatalf("slot %d: %+v", i, args[i])
		}
		if instances[i] != (ChunkInstanceData{}) {
			t.Fatalf("slot %d instance: %+v", i, instances[i])
		}
	}
}

func TestSharedIndexPattern(t *testing.T) {
	idx := SharedIndexPattern(3)
	if len(idx) != 3*IndicesPerQuad {
		t.Fatalf("len %d, want %d", len(idx), 3*IndicesPerQuad)
	}
	want := []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6, 8, 9, 10, 9, 11, 10}
	for i, v := range want {
		if idx[i] != v {
			t.Fatalf("index %d: got %d, want %d", i, idx[i], v)
		}
	}
}

func BenchmarkBuildDrawCommands(b *testing.B) {
	metadata := testMetadata(4096)
	visible := make([]uint32, 2048)
	for i := range visible {
		visible[i] = uint32(i * 2)
	}
	instances := make([]ChunkInstanceData, 4096)
	args := make([]IndexedIndirectArgs, 4096)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildDrawCommands(instances, args, metadata, visible)
	}
}
