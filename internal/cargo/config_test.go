package cargo

import (
	"os"
	"reflect"
	"testing"
)

func TestMerge_overridesAndKeeps(t *testing.T) {
	table := PatchTable{"foo": "/src/foo", "bar": "/src/bar"}
	table.Merge(map[string]string{"foo": "/opt/install/share/foo/rust"})

	want := PatchTable{
		"foo": "/opt/install/share/foo/rust",
		"bar": "/src/bar",
	}
	if !reflect.DeepEqual(table, want) {
		t.Errorf("table = %v, want %v", table, want)
	}
}

func TestMerge_idempotent(t *testing.T) {
	incoming := map[string]string{"foo": "/src/foo"}

	once := PatchTable{}
	once.Merge(incoming)

	twice := PatchTable{}
	twice.Merge(incoming)
	twice.Merge(incoming)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merging twice = %v, want %v", twice, once)
	}
}

func TestWriteConfig_roundTrip(t *testing.T) {
	root := t.TempDir()
	table := PatchTable{
		"foo": "/opt/install/share/foo/rust",
		"bar": "/home/user/ws/src/bar",
	}

	if err := WriteConfig(root, table); err != nil {
		t.Fatalf("WriteConfig() error: %v", err)
	}

	got, err := ReadConfig(ConfigPath(root))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("round trip = %v, want %v", got, table)
	}
}

func TestWriteConfig_emptyTable(t *testing.T) {
	root := t.TempDir()

	if err := WriteConfig(root, PatchTable{}); err != nil {
		t.Fatalf("WriteConfig() error: %v", err)
	}

	got, err := ReadConfig(ConfigPath(root))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty table round trip = %v, want empty", got)
	}
}

func TestWriteConfig_fullyReplaces(t *testing.T) {
	root := t.TempDir()

	if err := WriteConfig(root, PatchTable{"stale": "/gone"}); err != nil {
		t.Fatalf("WriteConfig() error: %v", err)
	}
	if err := WriteConfig(root, PatchTable{"foo": "/src/foo"}); err != nil {
		t.Fatalf("WriteConfig() error: %v", err)
	}

	got, err := ReadConfig(ConfigPath(root))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	if _, ok := got["stale"]; ok {
		t.Error("stale entry survived a rewrite")
	}
	if got["foo"] != "/src/foo" {
		t.Errorf("foo = %q, want %q", got["foo"], "/src/foo")
	}
}

func TestWriteConfig_leavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	if err := WriteConfig(root, PatchTable{"foo": "/src/foo"}); err != nil {
		t.Fatalf("WriteConfig() error: %v", err)
	}

	entries, err := os.ReadDir(root + "/.cargo")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.toml" {
		t.Errorf("unexpected .cargo contents: %v", entries)
	}
}
